package draft

import (
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/attachr/internal/catalog"
)

// Seed builds the default configuration for a newly selected variant: empty
// seller SKU, no backorders, managed inventory, and a zero row for every
// known region and stock location.
func Seed(variantID string, regions []catalog.Region, locations []catalog.StockLocation) catalog.AttachmentConfig {
	cfg := catalog.AttachmentConfig{
		VariantID:           variantID,
		SellerSKU:           "",
		AllowBackorder:      false,
		ManageInventory:     true,
		Prices:              make([]catalog.RegionPrice, 0, len(regions)),
		InventoryByLocation: make([]catalog.LocationInventory, 0, len(locations)),
	}
	for _, r := range regions {
		cfg.Prices = append(cfg.Prices, catalog.RegionPrice{
			RegionID:     r.ID,
			CurrencyCode: r.CurrencyCode,
			Amount:       0,
		})
	}
	for _, l := range locations {
		cfg.InventoryByLocation = append(cfg.InventoryByLocation, catalog.LocationInventory{
			LocationID: l.ID,
			Quantity:   0,
		})
	}
	return cfg
}

// Toggle selects (seeding defaults) or deselects (discarding edits) a variant.
func (s Selection) Toggle(variantID string, on bool, regions []catalog.Region, locations []catalog.StockLocation) Selection {
	if !on {
		return s.Remove(variantID)
	}
	if s.Has(variantID) {
		return s
	}
	return s.Put(Seed(variantID, regions, locations))
}

// SetSellerSKU sets the seller SKU of one variant.
func (s Selection) SetSellerSKU(variantID, sku string) Selection {
	return s.Update(variantID, func(cfg *catalog.AttachmentConfig) {
		cfg.SellerSKU = sku
	})
}

// SetAllowBackorder sets the backorder flag of one variant.
func (s Selection) SetAllowBackorder(variantID string, allow bool) Selection {
	return s.Update(variantID, func(cfg *catalog.AttachmentConfig) {
		cfg.AllowBackorder = allow
	})
}

// SetManageInventory sets the managed-inventory flag of one variant.
func (s Selection) SetManageInventory(variantID string, manage bool) Selection {
	return s.Update(variantID, func(cfg *catalog.AttachmentConfig) {
		cfg.ManageInventory = manage
	})
}

// SetPrice replaces the amount of the row matching regionID. Sibling rows are untouched.
func (s Selection) SetPrice(variantID, regionID string, amount int64) Selection {
	return s.Update(variantID, func(cfg *catalog.AttachmentConfig) {
		for i := range cfg.Prices {
			if cfg.Prices[i].RegionID == regionID {
				cfg.Prices[i].Amount = amount
			}
		}
	})
}

// SetQuantity replaces the quantity of the row matching locationID. Sibling rows are untouched.
func (s Selection) SetQuantity(variantID, locationID string, quantity int) Selection {
	return s.Update(variantID, func(cfg *catalog.AttachmentConfig) {
		for i := range cfg.InventoryByLocation {
			if cfg.InventoryByLocation[i].LocationID == locationID {
				cfg.InventoryByLocation[i].Quantity = quantity
			}
		}
	})
}

// ParseAmount parses a price input in minor units. Input that is not a
// number becomes 0; fractional input is rounded to the nearest unit.
func ParseAmount(input string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(math.Round(f))
}

// ParseQuantity parses a quantity input. Input that is not a number becomes 0;
// fractional input is truncated.
func ParseQuantity(input string) int {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}
