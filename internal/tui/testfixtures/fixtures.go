package testfixtures

import (
	"fmt"
	"time"

	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/seller"
)

// FixedTime is used wherever a stable timestamp is needed.
var FixedTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// Regions returns two regions with different currencies.
func Regions() []catalog.Region {
	return []catalog.Region{
		{ID: "reg_us", Name: "United States", CurrencyCode: "usd"},
		{ID: "reg_eu", Name: "Europe", CurrencyCode: "eur"},
	}
}

// Locations returns two stock locations.
func Locations() []catalog.StockLocation {
	return []catalog.StockLocation{
		{ID: "sloc_main", Name: "Main warehouse"},
		{ID: "sloc_east", Name: "East depot"},
	}
}

// Products returns a mixed-status product page: published, draft, proposed.
func Products() []catalog.Product {
	return []catalog.Product{
		{ID: "prod_tee", Title: "Classic Tee", Status: catalog.StatusPublished, CollectionTitle: strPtr("Summer"), VariantsCount: 3},
		{ID: "prod_hoodie", Title: "Hoodie", Status: catalog.StatusDraft, VariantsCount: 2},
		{ID: "prod_cap", Title: "Cap", Status: catalog.StatusProposed, VariantsCount: 1},
	}
}

// ManyProducts returns n published products named "Product 1".."Product n".
func ManyProducts(n int) []catalog.Product {
	out := make([]catalog.Product, n)
	for i := range out {
		out[i] = catalog.Product{
			ID:            fmt.Sprintf("prod_%d", i+1),
			Title:         fmt.Sprintf("Product %d", i+1),
			Status:        catalog.StatusPublished,
			VariantsCount: 1,
		}
	}
	return out
}

// TeeDetail returns the detail of "Classic Tee" with three variants.
func TeeDetail() catalog.ProductDetail {
	return catalog.ProductDetail{
		Product: Products()[0],
		Variants: []catalog.Variant{
			{ID: "var_s", Title: "Small", SKU: strPtr("TEE-S"), Options: []catalog.VariantOption{{ID: "opt_size", Title: "Size", Value: "S"}}},
			{ID: "var_m", Title: "Medium", SKU: strPtr("TEE-M"), Options: []catalog.VariantOption{{ID: "opt_size", Title: "Size", Value: "M"}}},
			{ID: "var_l", Title: "Large"},
		},
	}
}

// SellerProducts returns the seller's own products.
func SellerProducts() []seller.Product {
	return []seller.Product{
		{ID: "sp_1", Title: "Linen Shirt", Status: "published", Variants: 4},
		{ID: "sp_2", Title: "Canvas Tote", Status: "draft", Variants: 1},
	}
}
