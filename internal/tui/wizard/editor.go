package wizard

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/draft"
)

type fieldKind int

const (
	fieldSellerSKU fieldKind = iota
	fieldBackorder
	fieldManageInventory
	fieldPrice
	fieldQuantity
)

type editorField struct {
	kind  fieldKind
	label string
	ref   string // region or stock location id
}

func (f editorField) isText() bool {
	return f.kind == fieldSellerSKU || f.kind == fieldPrice || f.kind == fieldQuantity
}

// variantEditor edits the configuration of one selected variant. Every
// keystroke is written straight into the session selection.
type variantEditor struct {
	variant catalog.Variant
	fields  []editorField
	index   int
	input   textinput.Model
	width   int
}

func newVariantEditor(v catalog.Variant, regions []catalog.Region, locations []catalog.StockLocation, width int) *variantEditor {
	fields := []editorField{
		{kind: fieldSellerSKU, label: "Seller SKU"},
		{kind: fieldBackorder, label: "Allow backorder"},
		{kind: fieldManageInventory, label: "Manage inventory"},
	}
	for _, r := range regions {
		fields = append(fields, editorField{
			kind:  fieldPrice,
			label: "Price " + r.Name + " (" + strings.ToUpper(r.CurrencyCode) + ", minor units)",
			ref:   r.ID,
		})
	}
	for _, l := range locations {
		fields = append(fields, editorField{
			kind:  fieldQuantity,
			label: "Stock " + l.Name,
			ref:   l.ID,
		})
	}

	input := textinput.New()
	input.Prompt = ""
	input.SetStyles(inputStyles())

	e := &variantEditor{variant: v, fields: fields, input: input}
	e.setWidth(width)
	return e
}

func (e *variantEditor) setWidth(width int) {
	e.width = width
	w := width - 44
	if w < 10 {
		w = 10
	}
	e.input.SetWidth(w)
}

func (e *variantEditor) current() editorField {
	return e.fields[e.index]
}

// fieldValue returns the text shown for a field.
func fieldValue(f editorField, cfg catalog.AttachmentConfig) string {
	switch f.kind {
	case fieldSellerSKU:
		return cfg.SellerSKU
	case fieldBackorder:
		return checkbox(cfg.AllowBackorder, false)
	case fieldManageInventory:
		return checkbox(cfg.ManageInventory, false)
	case fieldPrice:
		for _, p := range cfg.Prices {
			if p.RegionID == f.ref {
				return strconv.FormatInt(p.Amount, 10)
			}
		}
	case fieldQuantity:
		for _, inv := range cfg.InventoryByLocation {
			if inv.LocationID == f.ref {
				return strconv.Itoa(inv.Quantity)
			}
		}
	}
	return ""
}

// focusField loads the focused text field into the input.
func (e *variantEditor) focusField(ctrl *draft.Controller) tea.Cmd {
	f := e.current()
	if !f.isText() {
		e.input.Blur()
		return nil
	}
	cfg, _ := ctrl.Session().Selection.Get(e.variant.ID)
	e.input.SetValue(fieldValue(f, cfg))
	e.input.CursorEnd()
	return e.input.Focus()
}

func (e *variantEditor) update(msg tea.Msg, ctrl *draft.Controller) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "shift+tab":
			if e.index > 0 {
				e.index--
			}
			return e.focusField(ctrl)
		case "down", "tab":
			if e.index < len(e.fields)-1 {
				e.index++
			}
			return e.focusField(ctrl)
		case "space":
			if !e.current().isText() {
				e.toggle(ctrl)
				return nil
			}
		}
	}

	if !e.current().isText() {
		return nil
	}
	before := e.input.Value()
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if value := e.input.Value(); value != before {
		e.apply(ctrl, value)
	}
	return cmd
}

func (e *variantEditor) toggle(ctrl *draft.Controller) {
	sel := ctrl.Session().Selection
	cfg, ok := sel.Get(e.variant.ID)
	if !ok {
		return
	}
	switch e.current().kind {
	case fieldBackorder:
		ctrl.Edit(sel.SetAllowBackorder(e.variant.ID, !cfg.AllowBackorder))
	case fieldManageInventory:
		ctrl.Edit(sel.SetManageInventory(e.variant.ID, !cfg.ManageInventory))
	}
}

// apply writes an input value into the selection. Numbers that do not parse become 0.
func (e *variantEditor) apply(ctrl *draft.Controller, value string) {
	sel := ctrl.Session().Selection
	f := e.current()
	switch f.kind {
	case fieldSellerSKU:
		ctrl.Edit(sel.SetSellerSKU(e.variant.ID, value))
	case fieldPrice:
		ctrl.Edit(sel.SetPrice(e.variant.ID, f.ref, draft.ParseAmount(value)))
	case fieldQuantity:
		ctrl.Edit(sel.SetQuantity(e.variant.ID, f.ref, draft.ParseQuantity(value)))
	}
}

func (e *variantEditor) view(sel draft.Selection) string {
	st := styles()
	cfg, _ := sel.Get(e.variant.ID)

	var b strings.Builder
	b.WriteString(st.Subtle.Render("Editing ") + st.Text.Bold(true).Render(e.variant.Title))
	b.WriteString("\n\n")

	for i, f := range e.fields {
		marker := "  "
		if i == e.index {
			marker = "> "
		}
		label := cell(f.label, 40)
		value := fieldValue(f, cfg)
		if i == e.index && f.isText() {
			value = e.input.View()
		}
		line := marker + label + " " + value
		if i == e.index {
			line = st.RowCursor.Render(marker+label) + " " + value
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHintBar(
		"↑↓", "field",
		"space", "toggle",
		"enter/esc", "done",
	))
	return b.String()
}
