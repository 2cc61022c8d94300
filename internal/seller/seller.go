// Package seller reads the seller-scoped collaborator data the attach flow
// depends on: regions, stock locations, store configuration and the seller's
// own product list.
package seller

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mark3labs/attachr/internal/api"
	"github.com/mark3labs/attachr/internal/catalog"
)

// Product is an entry of the seller's own catalog.
type Product struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Handle   string `json:"handle,omitempty"`
	Variants int    `json:"variants_count"`
}

// ProductList is one page of the seller's products.
type ProductList struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// ListQuery selects a page of the seller's products.
type ListQuery struct {
	Query  string
	Limit  int
	Offset int
}

// Service talks to the vendor endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a seller service on top of client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Regions returns the platform's configured regions.
func (s *Service) Regions(ctx context.Context) ([]catalog.Region, error) {
	var res struct {
		Regions []catalog.Region `json:"regions"`
	}
	if err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/vendor/regions"}, &res); err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	return res.Regions, nil
}

// StockLocations returns the seller's stock locations.
func (s *Service) StockLocations(ctx context.Context) ([]catalog.StockLocation, error) {
	var res struct {
		StockLocations []catalog.StockLocation `json:"stock_locations"`
	}
	if err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/vendor/stock-locations"}, &res); err != nil {
		return nil, fmt.Errorf("listing stock locations: %w", err)
	}
	return res.StockLocations, nil
}

// CatalogEnabled reports whether attaching from the global catalog is enabled for the seller.
func (s *Service) CatalogEnabled(ctx context.Context) (bool, error) {
	var res struct {
		Configuration struct {
			GlobalProductCatalog bool `json:"global_product_catalog"`
		} `json:"configuration"`
	}
	if err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/vendor/configuration"}, &res); err != nil {
		return false, fmt.Errorf("reading configuration: %w", err)
	}
	return res.Configuration.GlobalProductCatalog, nil
}

// ListProducts returns a page of the seller's own products.
func (s *Service) ListProducts(ctx context.Context, q ListQuery) (ProductList, error) {
	query := url.Values{}
	if q.Query != "" {
		query.Set("q", q.Query)
	}
	query.Set("limit", strconv.Itoa(q.Limit))
	query.Set("offset", strconv.Itoa(q.Offset))

	var res ProductList
	if err := s.client.Do(ctx, api.Request{Method: http.MethodGet, Path: "/vendor/products", Query: query}, &res); err != nil {
		return ProductList{}, fmt.Errorf("listing products: %w", err)
	}
	return res, nil
}
