package wizard

import (
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/draft"
	"github.com/mark3labs/attachr/internal/journal"
	"github.com/mark3labs/attachr/internal/tui/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	step        *ReviewStep
	ctrl        *draft.Controller
	gateway     *testfixtures.MockGateway
	invalidator *testfixtures.MockInvalidator
	journal     *testfixtures.MockRecorder
}

// newReview prepares a review of "Small" priced at 1999 in the US region.
func newReview(t *testing.T) *reviewFixture {
	t.Helper()
	ctrl := draft.NewController(nil)
	ctrl.Open(testfixtures.Regions(), testfixtures.Locations())
	gen, ok := ctrl.SelectProduct(testfixtures.Products()[0])
	require.True(t, ok)
	require.True(t, ctrl.SetVariants(gen, testfixtures.TeeDetail().Variants))

	sel := ctrl.Session().Selection.Toggle("var_s", true, testfixtures.Regions(), testfixtures.Locations())
	sel = sel.SetPrice("var_s", "reg_us", 1999)
	sel = sel.SetQuantity("var_s", "sloc_east", 4)
	ctrl.Edit(sel)
	ctrl.ConfirmVariants(ctrl.Session().Selection)
	require.Equal(t, draft.StepReview, ctrl.Step())

	f := &reviewFixture{
		ctrl:        ctrl,
		gateway:     testfixtures.NewMockGateway(),
		invalidator: &testfixtures.MockInvalidator{},
		journal:     &testfixtures.MockRecorder{},
	}
	f.step = NewReviewStep(ctrl, Deps{
		Gateway:        f.gateway,
		Invalidator:    f.invalidator,
		Journal:        f.journal,
		RequestTimeout: time.Second,
	})
	f.step.SetSize(100, 30)
	return f
}

func TestReviewStep_View(t *testing.T) {
	f := newReview(t)
	view := testfixtures.Plain(f.step.View())

	assert.Contains(t, view, "Classic Tee")
	assert.Contains(t, view, "Selected variants: 1 / 3")
	assert.Contains(t, view, "Small")
	assert.NotContains(t, view, "Medium")
	assert.Contains(t, view, "Seller SKU: -")
	assert.Contains(t, view, "No backorders")
	assert.Contains(t, view, "Managed inventory")
	assert.Contains(t, view, "Prices: United States $19.99")
	assert.NotContains(t, view, "Europe", "zero prices are hidden")
	assert.Contains(t, view, "Inventory: Main warehouse: 0 · East depot: 4")
	assert.Contains(t, view, "Summary")
	assert.Contains(t, view, "Product: Classic Tee")
	assert.Contains(t, view, "Variants: 1")
	assert.Contains(t, view, "Attach 1 variant")
}

func TestReviewStep_ViewShowsEditedFlags(t *testing.T) {
	f := newReview(t)
	sel := f.ctrl.Session().Selection
	sel = sel.SetSellerSKU("var_s", "MINE-S")
	sel = sel.SetAllowBackorder("var_s", true)
	sel = sel.SetManageInventory("var_s", false)
	// Edits are only accepted on the configure step.
	f.ctrl.GoBack()
	f.ctrl.Edit(sel)
	f.ctrl.ConfirmVariants(f.ctrl.Session().Selection)

	view := testfixtures.Plain(f.step.View())
	assert.Contains(t, view, "Seller SKU: MINE-S")
	assert.Contains(t, view, "Backorders allowed")
	assert.Contains(t, view, "Unmanaged inventory")
}

func TestReviewStep_SubmitSendsEveryConfig(t *testing.T) {
	f := newReview(t)

	cmd := f.step.Update(testfixtures.Key(tea.KeyEnter))
	require.True(t, f.step.Submitting())
	view := testfixtures.Plain(f.step.View())
	assert.Contains(t, view, "Submitting...")
	assert.NotContains(t, view, "Attach 1 variant")

	// Keys are ignored while submitting
	assert.Nil(t, f.step.Update(testfixtures.Key(tea.KeyEnter)))
	assert.Nil(t, f.step.Submit())

	done, ok := testfixtures.FindMsg[attachDoneMsg](t, cmd)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, "Classic Tee", done.title)
	assert.Equal(t, 1, done.variants)
	assert.Equal(t, f.ctrl.Generation(), done.gen)

	calls := f.gateway.Attaches()
	require.Len(t, calls, 1)
	assert.Equal(t, "prod_tee", calls[0].Request.ProductID)
	require.Len(t, calls[0].Request.Variants, 1)
	assert.Equal(t, int64(1999), calls[0].Request.Variants[0].Prices[0].Amount)
	assert.Equal(t, f.ctrl.SubmissionKey(), calls[0].IdempotencyKey)

	assert.Equal(t, 1, f.invalidator.Calls())
	entries := f.journal.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, journal.OutcomeSucceeded, entries[0].Outcome)
	assert.Equal(t, []string{"var_s"}, entries[0].VariantIDs)

	f.step.finish()
	assert.False(t, f.step.Submitting())
}

func TestReviewStep_FailureRecordedWithoutInvalidation(t *testing.T) {
	f := newReview(t)
	f.gateway.SetAttachErr(errors.New("gateway timeout"))

	done, ok := testfixtures.FindMsg[attachDoneMsg](t, f.step.Submit())
	require.True(t, ok)
	require.Error(t, done.err)

	assert.Equal(t, 0, f.invalidator.Calls())
	entries := f.journal.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, journal.OutcomeFailed, entries[0].Outcome)
	assert.Equal(t, "gateway timeout", entries[0].Error)
}

func TestReviewStep_BackButton(t *testing.T) {
	f := newReview(t)
	f.step.Update(testfixtures.Key(tea.KeyLeft))
	_, ok := testfixtures.FindMsg[BackMsg](t, f.step.Update(testfixtures.Key(tea.KeyEnter)))
	assert.True(t, ok)
	assert.Empty(t, f.gateway.Attaches())
}

func TestFormatPrices(t *testing.T) {
	prices := []catalog.RegionPrice{
		{RegionID: "reg_us", CurrencyCode: "usd", Amount: 0},
		{RegionID: "reg_eu", CurrencyCode: "eur", Amount: 123450},
		{RegionID: "reg_gone", CurrencyCode: "usd", Amount: 500},
	}
	assert.Equal(t, []string{"Europe €1,234.50", "reg_gone $5.00"}, formatPrices(prices, testfixtures.Regions()))
}

func TestPluralVariants(t *testing.T) {
	assert.Equal(t, "1 variant", pluralVariants(1))
	assert.Equal(t, "3 variants", pluralVariants(3))
}
