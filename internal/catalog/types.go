// Package catalog models the shared product catalog and the attach contract
// that links catalog variants into a seller's own catalog.
package catalog

// Status is the publication state of a catalog product.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
	StatusProposed  Status = "proposed"
)

// IsAttachable reports whether products in this state may be attached.
func (s Status) IsAttachable() bool {
	return s == StatusPublished
}

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPublished, StatusDraft, StatusProposed:
		return true
	}
	return false
}

// Product is a read-only entry of the shared catalog.
type Product struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Status          Status  `json:"status"`
	Handle          string  `json:"handle,omitempty"`
	CollectionTitle *string `json:"collection_title,omitempty"`
	VariantsCount   int     `json:"variants_count"`
}

// Collection returns the collection title or "" when the product has none.
func (p Product) Collection() string {
	if p.CollectionTitle == nil {
		return ""
	}
	return *p.CollectionTitle
}

// VariantOption is one option value of a variant, e.g. Size=Large.
type VariantOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Value string `json:"value"`
}

// Variant is a catalog variant. SKU is the global catalog SKU, not the seller's.
type Variant struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	SKU     *string         `json:"sku,omitempty"`
	Options []VariantOption `json:"options,omitempty"`
}

// GlobalSKU returns the catalog SKU or "".
func (v Variant) GlobalSKU() string {
	if v.SKU == nil {
		return ""
	}
	return *v.SKU
}

// ProductDetail is a product together with its variants.
type ProductDetail struct {
	Product
	Variants []Variant `json:"variants"`
}

// Region is a pricing market with its currency.
type Region struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currency_code"`
}

// StockLocation is a seller-owned inventory location.
type StockLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RegionPrice is a price in minor currency units for one region.
type RegionPrice struct {
	RegionID     string `json:"region_id"`
	CurrencyCode string `json:"currency_code"`
	Amount       int64  `json:"amount"`
}

// LocationInventory is the stocked quantity at one location.
type LocationInventory struct {
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

// AttachmentConfig holds the seller-specific settings for one attached variant.
type AttachmentConfig struct {
	VariantID           string              `json:"variant_id"`
	SellerSKU           string              `json:"seller_sku"`
	AllowBackorder      bool                `json:"allow_backorder"`
	ManageInventory     bool                `json:"manage_inventory"`
	Prices              []RegionPrice       `json:"prices"`
	InventoryByLocation []LocationInventory `json:"inventory_by_location"`
}

// Clone returns a deep copy so callers can mutate the slices freely.
func (c AttachmentConfig) Clone() AttachmentConfig {
	out := c
	out.Prices = append([]RegionPrice(nil), c.Prices...)
	out.InventoryByLocation = append([]LocationInventory(nil), c.InventoryByLocation...)
	return out
}

// AttachRequest is the payload of the attach operation.
type AttachRequest struct {
	ProductID string             `json:"product_id"`
	Variants  []AttachmentConfig `json:"variants"`
}

// AttachResult is the backend acknowledgment of an attach call.
type AttachResult struct {
	Success bool `json:"success"`
}

// SearchQuery is a paginated, text-filtered catalog search.
type SearchQuery struct {
	Query  string
	Limit  int
	Offset int
}

// SearchResult is one page of catalog products.
type SearchResult struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}
