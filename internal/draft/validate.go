package draft

import "github.com/mark3labs/attachr/internal/catalog"

// BlockReason explains why a selection cannot move on to review.
type BlockReason int

const (
	Unblocked BlockReason = iota
	BlockedEmptySelection
	BlockedNoStockLocations
	BlockedMissingPrice
	BlockedMissingInventory
)

// Message returns a short human-readable hint for the reason.
func (r BlockReason) Message() string {
	switch r {
	case BlockedEmptySelection:
		return "Select at least one variant"
	case BlockedNoStockLocations:
		return "Create a stock location before attaching products"
	case BlockedMissingPrice:
		return "Every selected variant needs a price above zero"
	case BlockedMissingInventory:
		return "Every selected variant needs an inventory row"
	default:
		return ""
	}
}

// Check evaluates the validity gate and returns the first blocking reason and
// the variant it concerns (if any).
func Check(sel Selection, locations []catalog.StockLocation) (BlockReason, string) {
	if sel.Len() == 0 {
		return BlockedEmptySelection, ""
	}
	if len(locations) == 0 {
		return BlockedNoStockLocations, ""
	}
	for _, id := range sel.order {
		cfg := sel.items[id]
		if !hasPositivePrice(cfg) {
			return BlockedMissingPrice, id
		}
		if !hasInventoryRow(cfg) {
			return BlockedMissingInventory, id
		}
	}
	return Unblocked, ""
}

// IsValid reports whether the selection may proceed to review.
func IsValid(sel Selection, locations []catalog.StockLocation) bool {
	reason, _ := Check(sel, locations)
	return reason == Unblocked
}

func hasPositivePrice(cfg catalog.AttachmentConfig) bool {
	for _, p := range cfg.Prices {
		if p.Amount > 0 {
			return true
		}
	}
	return false
}

func hasInventoryRow(cfg catalog.AttachmentConfig) bool {
	for _, inv := range cfg.InventoryByLocation {
		if inv.Quantity >= 0 {
			return true
		}
	}
	return false
}
