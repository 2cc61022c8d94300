package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mark3labs/attachr/internal/api"
	"github.com/mark3labs/attachr/internal/logger"
)

// Gateway is the catalog service as seen by the attach wizard.
type Gateway interface {
	SearchProducts(ctx context.Context, q SearchQuery) (SearchResult, error)
	GetProductDetail(ctx context.Context, productID string) (ProductDetail, error)
	// Attach submits req. Calls carrying the same idempotencyKey describe the same submission.
	Attach(ctx context.Context, req AttachRequest, idempotencyKey string) (AttachResult, error)
}

// HTTPGateway implements Gateway over the vendor catalog REST endpoints.
type HTTPGateway struct {
	client *api.Client
}

// NewHTTPGateway creates a gateway on top of client.
func NewHTTPGateway(client *api.Client) *HTTPGateway {
	return &HTTPGateway{client: client}
}

// SearchProducts lists catalog products matching q.
func (g *HTTPGateway) SearchProducts(ctx context.Context, q SearchQuery) (SearchResult, error) {
	query := url.Values{}
	query.Set("q", q.Query)
	query.Set("limit", strconv.Itoa(q.Limit))
	query.Set("offset", strconv.Itoa(q.Offset))

	var res SearchResult
	if err := g.client.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/vendor/catalog/products",
		Query:  query,
	}, &res); err != nil {
		return SearchResult{}, fmt.Errorf("searching catalog: %w", err)
	}
	if res.Limit == 0 {
		res.Limit = q.Limit
	}
	if res.Offset == 0 {
		res.Offset = q.Offset
	}
	return res, nil
}

// GetProductDetail fetches one product with its variants.
func (g *HTTPGateway) GetProductDetail(ctx context.Context, productID string) (ProductDetail, error) {
	var res struct {
		Product ProductDetail `json:"product"`
	}
	err := g.client.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/vendor/catalog/products/" + url.PathEscape(productID),
	}, &res)
	if api.IsNotFound(err) {
		return ProductDetail{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	if err != nil {
		return ProductDetail{}, fmt.Errorf("fetching product %s: %w", productID, err)
	}
	return res.Product, nil
}

// Attach submits the attachment request.
func (g *HTTPGateway) Attach(ctx context.Context, req AttachRequest, idempotencyKey string) (AttachResult, error) {
	var res AttachResult
	if err := g.client.Do(ctx, api.Request{
		Method:         http.MethodPost,
		Path:           "/vendor/catalog/attach",
		Body:           req,
		IdempotencyKey: idempotencyKey,
	}, &res); err != nil {
		return AttachResult{}, fmt.Errorf("attaching product %s: %w", req.ProductID, err)
	}
	if !res.Success {
		logger.Warn("Attach of product %s returned success=false", req.ProductID)
		return res, ErrAttachRejected
	}
	logger.Info("Attached %d variant(s) of product %s", len(req.Variants), req.ProductID)
	return res, nil
}
