package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/draft"
	"github.com/mark3labs/attachr/internal/journal"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/money"
)

// ReviewStep shows the configured variants and submits the attach request.
type ReviewStep struct {
	deps       Deps
	ctrl       *draft.Controller
	submitting bool
	focus      int // 0 back, 1 submit

	width  int
	height int
}

// NewReviewStep creates the review step.
func NewReviewStep(ctrl *draft.Controller, deps Deps) *ReviewStep {
	return &ReviewStep{
		deps:   deps.withDefaults(),
		ctrl:   ctrl,
		focus:  1,
		width:  60,
		height: 20,
	}
}

// Init has nothing to load.
func (r *ReviewStep) Init() tea.Cmd {
	return nil
}

// SetSize updates the dimensions for the review step.
func (r *ReviewStep) SetSize(width, height int) {
	r.width = width
	r.height = height
}

// Submitting reports whether an attach request is in flight.
func (r *ReviewStep) Submitting() bool {
	return r.submitting
}

// finish clears the submitting flag once the request has settled.
func (r *ReviewStep) finish() {
	r.submitting = false
}

// Update handles messages for the review step.
func (r *ReviewStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || r.submitting {
		return nil
	}
	switch keyMsg.String() {
	case "left", "shift+tab":
		r.focus = 0
	case "right", "tab":
		r.focus = 1
	case "enter":
		if r.focus == 0 {
			return func() tea.Msg { return BackMsg{} }
		}
		return r.Submit()
	}
	return nil
}

// Submit sends every configured variant to the attach endpoint. The
// idempotency key is reused when an unchanged selection is resubmitted.
func (r *ReviewStep) Submit() tea.Cmd {
	if r.submitting {
		return nil
	}
	session := r.ctrl.Session()
	if session.Product == nil || session.Selection.Len() == 0 {
		return nil
	}
	r.submitting = true

	req := r.ctrl.AttachRequest()
	key := r.ctrl.SubmissionKey()
	gen := r.ctrl.Generation()
	title := session.Product.Title
	variantIDs := session.Selection.IDs()
	deps := r.deps

	return func() tea.Msg {
		ctx, cancel := deps.context()
		_, err := deps.Gateway.Attach(ctx, req, key)
		cancel()

		followCtx, followCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer followCancel()

		entry := journal.Entry{
			IdempotencyKey: key,
			ProductID:      req.ProductID,
			ProductTitle:   title,
			VariantIDs:     variantIDs,
			Outcome:        journal.OutcomeSucceeded,
		}
		if err != nil {
			entry.Outcome = journal.OutcomeFailed
			entry.Error = failureMessage(err)
		} else if deps.Invalidator != nil {
			if ierr := deps.Invalidator.Invalidate(followCtx); ierr != nil {
				logger.Warn("product list cache invalidation failed: %v", ierr)
			}
		}
		if deps.Journal != nil {
			if jerr := deps.Journal.Record(followCtx, entry); jerr != nil {
				logger.Warn("recording attach attempt failed: %v", jerr)
			}
		}

		return attachDoneMsg{gen: gen, title: title, variants: len(req.Variants), err: err}
	}
}

// View renders the review step.
func (r *ReviewStep) View() string {
	st := styles()
	session := r.ctrl.Session()
	var b strings.Builder

	title := ""
	if session.Product != nil {
		title = session.Product.Title
	}
	b.WriteString(st.SectionTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(st.BadgeInfo.Render(fmt.Sprintf("Selected variants: %d / %d",
		session.Selection.Len(), len(session.Variants))))
	b.WriteString("\n\n")

	for _, cfg := range session.Selection.Configs() {
		v, ok := findVariant(session.Variants, cfg.VariantID)
		if !ok {
			continue
		}
		b.WriteString(renderReviewEntry(v, cfg, session))
		b.WriteString("\n")
	}

	b.WriteString(st.SectionTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(st.Subtle.Render(fmt.Sprintf("Product: %s", title)))
	b.WriteString("\n")
	b.WriteString(st.Subtle.Render(fmt.Sprintf("Variants: %d", session.Selection.Len())))
	b.WriteString("\n")
	b.WriteString(st.Subtle.Render("These variants will be added to your catalog with the prices and stock shown above."))
	b.WriteString("\n\n")

	label := fmt.Sprintf("Attach %s", pluralVariants(session.Selection.Len()))
	focus := r.focus
	if r.submitting {
		label = "Submitting..."
		focus = -1
	}
	bar := NewButtonBar(CreateBackNextButtons(!r.submitting, !r.submitting, label, focus))
	bar.SetWidth(r.width)
	b.WriteString(bar.Render())
	b.WriteString("\n")
	b.WriteString(renderHintBar(
		"←→", "choose",
		"enter", "confirm",
		"esc", "back",
	))
	return b.String()
}

func findVariant(variants []catalog.Variant, id string) (catalog.Variant, bool) {
	for _, v := range variants {
		if v.ID == id {
			return v, true
		}
	}
	return catalog.Variant{}, false
}

func pluralVariants(n int) string {
	if n == 1 {
		return "1 variant"
	}
	return strconv.Itoa(n) + " variants"
}

// renderReviewEntry renders one configured variant.
func renderReviewEntry(v catalog.Variant, cfg catalog.AttachmentConfig, session draft.Session) string {
	st := styles()
	var b strings.Builder

	b.WriteString(st.Text.Bold(true).Render(v.Title))
	b.WriteString("\n")

	sku := cfg.SellerSKU
	if sku == "" {
		sku = "-"
	}
	b.WriteString("  Seller SKU: " + sku + "\n")

	backorder := st.BadgeMuted.Render("No backorders")
	if cfg.AllowBackorder {
		backorder = st.BadgeWarning.Render("Backorders allowed")
	}
	inventory := st.BadgeMuted.Render("Unmanaged inventory")
	if cfg.ManageInventory {
		inventory = st.BadgeSuccess.Render("Managed inventory")
	}
	b.WriteString("  " + backorder + " " + inventory + "\n")

	if prices := formatPrices(cfg.Prices, session.Regions); len(prices) > 0 {
		b.WriteString("  Prices: " + strings.Join(prices, " · ") + "\n")
	}
	if stock := formatInventory(cfg.InventoryByLocation, session.Locations); len(stock) > 0 {
		b.WriteString("  Inventory: " + strings.Join(stock, " · ") + "\n")
	}
	return b.String()
}

// formatPrices lists prices above zero as "<region> <amount>".
func formatPrices(prices []catalog.RegionPrice, regions []catalog.Region) []string {
	var out []string
	for _, p := range prices {
		if p.Amount <= 0 {
			continue
		}
		label := p.RegionID
		for _, r := range regions {
			if r.ID == p.RegionID {
				label = r.Name
				break
			}
		}
		out = append(out, label+" "+money.Format(p.Amount, p.CurrencyCode))
	}
	return out
}

// formatInventory lists every inventory row as "<location>: <qty>".
func formatInventory(rows []catalog.LocationInventory, locations []catalog.StockLocation) []string {
	out := make([]string, 0, len(rows))
	for _, inv := range rows {
		label := inv.LocationID
		for _, l := range locations {
			if l.ID == inv.LocationID {
				label = l.Name
				break
			}
		}
		out = append(out, fmt.Sprintf("%s: %d", label, inv.Quantity))
	}
	return out
}
