package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatus_IsAttachable(t *testing.T) {
	require.True(t, StatusPublished.IsAttachable())
	require.False(t, StatusDraft.IsAttachable())
	require.False(t, StatusProposed.IsAttachable())
	require.False(t, Status("archived").IsAttachable())
}

func TestStatus_Valid(t *testing.T) {
	require.True(t, StatusProposed.Valid())
	require.False(t, Status("").Valid())
}

func TestProductDetail_DecodesFlattenedProduct(t *testing.T) {
	raw := `{
		"id": "prod_1",
		"title": "Test Product",
		"status": "published",
		"collection_title": null,
		"variants_count": 2,
		"variants": [
			{"id": "variant_1", "title": "Small / Blue", "sku": "SKU-001",
			 "options": [{"id": "opt_1", "title": "Size", "value": "Small"}]},
			{"id": "variant_2", "title": "Large / Red", "sku": null}
		]
	}`

	var d ProductDetail
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	require.Equal(t, "prod_1", d.ID)
	require.Equal(t, StatusPublished, d.Status)
	require.Equal(t, "", d.Collection())
	require.Len(t, d.Variants, 2)
	require.Equal(t, "SKU-001", d.Variants[0].GlobalSKU())
	require.Equal(t, "", d.Variants[1].GlobalSKU())
	require.Equal(t, "Small", d.Variants[0].Options[0].Value)
}

func TestAttachmentConfig_CloneIsDeep(t *testing.T) {
	orig := AttachmentConfig{
		VariantID:           "variant_1",
		Prices:              []RegionPrice{{RegionID: "reg_us", CurrencyCode: "usd"}},
		InventoryByLocation: []LocationInventory{{LocationID: "loc_1"}},
	}

	clone := orig.Clone()
	clone.Prices[0].Amount = 500
	clone.InventoryByLocation[0].Quantity = 3

	require.Equal(t, int64(0), orig.Prices[0].Amount)
	require.Equal(t, 0, orig.InventoryByLocation[0].Quantity)
}
