package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/draft"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/tui/theme"
)

type detailState int

const (
	detailLoading detailState = iota
	detailReady
	detailNotFound
	detailFailed
)

// configure step focus targets
const (
	focusList = iota
	focusBack
	focusNext
)

// ConfigureStep lets the seller pick variants of the selected product and
// edit their seller SKU, flags, prices and stock.
type ConfigureStep struct {
	deps Deps
	ctrl *draft.Controller
	gen  uint64 // generation the detail fetch is tagged with

	spinner spinner.Model
	state   detailState
	err     error

	cursor int
	focus  int
	editor *variantEditor

	width  int
	height int
}

// NewConfigureStep creates the configure step for a product selected under generation gen.
func NewConfigureStep(ctrl *draft.Controller, deps Deps, gen uint64) *ConfigureStep {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	return &ConfigureStep{
		deps:    deps.withDefaults(),
		ctrl:    ctrl,
		gen:     gen,
		spinner: s,
		state:   detailLoading,
		width:   60,
		height:  20,
	}
}

// Init starts the variant-detail fetch.
func (c *ConfigureStep) Init() tea.Cmd {
	session := c.ctrl.Session()
	if session.Product == nil {
		return nil
	}
	if session.VariantsLoaded {
		c.state = detailReady
		return nil
	}

	gen, id, deps := c.gen, session.Product.ID, c.deps
	fetch := func() tea.Msg {
		ctx, cancel := deps.context()
		defer cancel()
		detail, err := deps.Gateway.GetProductDetail(ctx, id)
		return detailLoadedMsg{gen: gen, detail: detail, err: err}
	}
	return tea.Batch(fetch, c.spinner.Tick)
}

// SetSize updates the dimensions for the configure step.
func (c *ConfigureStep) SetSize(width, height int) {
	c.width = width
	c.height = height
	if c.editor != nil {
		c.editor.setWidth(width)
	}
}

// Editing reports whether the field editor is open.
func (c *ConfigureStep) Editing() bool {
	return c.editor != nil
}

func (c *ConfigureStep) variants() []catalog.Variant {
	return c.ctrl.Session().Variants
}

func (c *ConfigureStep) selection() draft.Selection {
	return c.ctrl.Session().Selection
}

func (c *ConfigureStep) canSelect() bool {
	return len(c.ctrl.Session().Locations) > 0
}

// Valid reports whether Next is enabled.
func (c *ConfigureStep) Valid() bool {
	return c.state == detailReady && draft.IsValid(c.selection(), c.ctrl.Session().Locations)
}

// Update handles messages for the configure step.
func (c *ConfigureStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.gen != c.gen {
			return nil
		}
		if msg.err != nil {
			if !c.ctrl.Current(msg.gen) {
				return nil
			}
			if catalog.Classify(msg.err) == catalog.FailureNotFound {
				c.state = detailNotFound
			} else {
				logger.Warn("loading product detail failed: %v", msg.err)
				c.state = detailFailed
				c.err = msg.err
			}
			return nil
		}
		if c.ctrl.SetVariants(msg.gen, msg.detail.Variants) {
			c.state = detailReady
		}
		return nil

	case spinner.TickMsg:
		if c.state != detailLoading {
			return nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return cmd
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if c.editor != nil {
		if ok && (keyMsg.String() == "esc" || keyMsg.String() == "enter") {
			c.editor = nil
			return nil
		}
		return c.editor.update(msg, c.ctrl)
	}
	if !ok || c.state != detailReady {
		return nil
	}

	switch keyMsg.String() {
	case "tab":
		c.focus = (c.focus + 1) % 3
		return nil
	case "shift+tab":
		c.focus = (c.focus + 2) % 3
		return nil
	case "up", "k":
		if c.focus == focusList && c.cursor > 0 {
			c.cursor--
		}
		return nil
	case "down", "j":
		if c.focus == focusList && c.cursor < len(c.variants())-1 {
			c.cursor++
		}
		return nil
	case "space":
		if c.focus == focusList {
			c.toggleCurrent()
		}
		return nil
	case "enter":
		switch c.focus {
		case focusBack:
			return func() tea.Msg { return BackMsg{} }
		case focusNext:
			return c.confirm()
		default:
			return c.editCurrent()
		}
	}
	return nil
}

func (c *ConfigureStep) currentVariant() (catalog.Variant, bool) {
	variants := c.variants()
	if c.cursor < 0 || c.cursor >= len(variants) {
		return catalog.Variant{}, false
	}
	return variants[c.cursor], true
}

// toggleCurrent checks or unchecks the variant under the cursor. Checking is
// disabled while the seller has no stock locations.
func (c *ConfigureStep) toggleCurrent() {
	v, ok := c.currentVariant()
	if !ok || !c.canSelect() {
		return
	}
	session := c.ctrl.Session()
	sel := session.Selection.Toggle(v.ID, !session.Selection.Has(v.ID), session.Regions, session.Locations)
	c.ctrl.Edit(sel)
}

// editCurrent opens the field editor, selecting the variant first if needed.
func (c *ConfigureStep) editCurrent() tea.Cmd {
	v, ok := c.currentVariant()
	if !ok || !c.canSelect() {
		return nil
	}
	if !c.selection().Has(v.ID) {
		c.toggleCurrent()
	}
	session := c.ctrl.Session()
	c.editor = newVariantEditor(v, session.Regions, session.Locations, c.width)
	return c.editor.focusField(c.ctrl)
}

func (c *ConfigureStep) confirm() tea.Cmd {
	if !c.Valid() {
		return nil
	}
	sel := c.selection()
	return func() tea.Msg {
		return VariantsConfirmedMsg{Selection: sel}
	}
}

// View renders the configure step.
func (c *ConfigureStep) View() string {
	st := styles()
	session := c.ctrl.Session()
	var b strings.Builder

	if session.Product != nil {
		b.WriteString(st.SectionTitle.Render(session.Product.Title))
		b.WriteString("\n\n")
	}

	switch c.state {
	case detailLoading:
		b.WriteString(c.spinner.View())
		b.WriteString(" Loading variants...\n\n")
		b.WriteString(renderHintBar("esc", "back"))
		return b.String()
	case detailNotFound:
		b.WriteString(st.Muted.Render("Product not found"))
		b.WriteString("\n\n")
		b.WriteString(renderHintBar("esc", "back"))
		return b.String()
	case detailFailed:
		b.WriteString(st.Error.Render("Error: " + failureMessage(c.err)))
		b.WriteString("\n\n")
		b.WriteString(renderHintBar("esc", "back"))
		return b.String()
	}

	if c.editor != nil {
		b.WriteString(c.editor.view(c.selection()))
		return b.String()
	}

	if !c.canSelect() {
		b.WriteString(alert("No stock locations",
			"Create a stock location before attaching products. Variants cannot be selected until one exists.",
			c.width-4))
		b.WriteString("\n\n")
	}

	variants := session.Variants
	if len(variants) == 0 {
		b.WriteString(st.Muted.Render("This product has no variants"))
		b.WriteString("\n")
	}
	for i, v := range variants {
		b.WriteString(c.renderVariant(i, v, session))
	}

	b.WriteString("\n")
	b.WriteString(st.BadgeInfo.Render(fmt.Sprintf("Selected variants: %d / %d", session.Selection.Len(), len(variants))))
	if reason, _ := draft.Check(session.Selection, session.Locations); reason != draft.Unblocked {
		b.WriteString("  ")
		b.WriteString(st.Muted.Render(reason.Message()))
	}
	b.WriteString("\n\n")

	focus := -1
	switch c.focus {
	case focusBack:
		focus = 0
	case focusNext:
		focus = 1
	}
	bar := NewButtonBar(CreateBackNextButtons(true, c.Valid(), "Next →", focus))
	bar.SetWidth(c.width)
	b.WriteString(bar.Render())
	b.WriteString("\n")
	b.WriteString(renderHintBar(
		"↑↓", "navigate",
		"space", "toggle",
		"enter", "edit",
		"tab", "buttons",
		"esc", "back",
	))
	return b.String()
}

func (c *ConfigureStep) renderVariant(i int, v catalog.Variant, session draft.Session) string {
	st := styles()
	cfg, selected := session.Selection.Get(v.ID)

	marker := "  "
	if i == c.cursor && c.focus == focusList {
		marker = "> "
	}
	line := marker + checkbox(selected, !c.canSelect()) + " " + v.Title
	if i == c.cursor && c.focus == focusList {
		line = st.RowCursor.Render(line)
	}

	var details []string
	if sku := v.GlobalSKU(); sku != "" {
		details = append(details, "Global SKU: "+sku)
	}
	for _, o := range v.Options {
		details = append(details, o.Title+": "+o.Value)
	}

	var b strings.Builder
	b.WriteString(line + "\n")
	if len(details) > 0 {
		b.WriteString("      " + st.Muted.Render(strings.Join(details, " · ")) + "\n")
	}
	if selected {
		b.WriteString("      " + st.Subtle.Render(configSummary(cfg)) + "\n")
	}
	return b.String()
}

func configSummary(cfg catalog.AttachmentConfig) string {
	sku := cfg.SellerSKU
	if sku == "" {
		sku = "-"
	}
	priced := 0
	for _, p := range cfg.Prices {
		if p.Amount > 0 {
			priced++
		}
	}
	stock := 0
	for _, inv := range cfg.InventoryByLocation {
		stock += inv.Quantity
	}
	return fmt.Sprintf("Seller SKU: %s · Prices set: %d/%d · Stock: %s",
		sku, priced, len(cfg.Prices), strconv.Itoa(stock))
}
