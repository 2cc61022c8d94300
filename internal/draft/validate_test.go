package draft

import (
	"testing"

	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	priced := Selection{}.
		Toggle("v1", true, testRegions, testLocations).
		SetPrice("v1", "reg_us", 1000)

	tests := []struct {
		name      string
		sel       Selection
		locations []catalog.StockLocation
		want      BlockReason
		variant   string
	}{
		{
			name:      "empty selection",
			sel:       Selection{},
			locations: testLocations,
			want:      BlockedEmptySelection,
		},
		{
			name:      "no stock locations",
			sel:       priced,
			locations: nil,
			want:      BlockedNoStockLocations,
		},
		{
			name:      "all prices zero",
			sel:       Selection{}.Toggle("v1", true, testRegions, testLocations),
			locations: testLocations,
			want:      BlockedMissingPrice,
			variant:   "v1",
		},
		{
			name:      "negative price does not count",
			sel:       Selection{}.Toggle("v1", true, testRegions, testLocations).SetPrice("v1", "reg_us", -5),
			locations: testLocations,
			want:      BlockedMissingPrice,
			variant:   "v1",
		},
		{
			name:      "second variant unpriced",
			sel:       priced.Toggle("v2", true, testRegions, testLocations),
			locations: testLocations,
			want:      BlockedMissingPrice,
			variant:   "v2",
		},
		{
			name:      "no inventory rows",
			sel:       Selection{}.Toggle("v1", true, testRegions, nil).SetPrice("v1", "reg_us", 1000),
			locations: testLocations,
			want:      BlockedMissingInventory,
			variant:   "v1",
		},
		{
			name:      "only negative quantities",
			sel:       priced.SetQuantity("v1", "sloc_main", -1).SetQuantity("v1", "sloc_east", -3),
			locations: testLocations,
			want:      BlockedMissingInventory,
			variant:   "v1",
		},
		{
			name:      "valid with zero quantity",
			sel:       priced,
			locations: testLocations,
			want:      Unblocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, variant := Check(tt.sel, tt.locations)
			assert.Equal(t, tt.want, reason)
			assert.Equal(t, tt.variant, variant)
			assert.Equal(t, tt.want == Unblocked, IsValid(tt.sel, tt.locations))
		})
	}
}

func TestBlockReason_Message(t *testing.T) {
	assert.Empty(t, Unblocked.Message())
	for _, r := range []BlockReason{BlockedEmptySelection, BlockedNoStockLocations, BlockedMissingPrice, BlockedMissingInventory} {
		assert.NotEmpty(t, r.Message())
	}
}
