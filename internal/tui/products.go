package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/seller"
	"github.com/mark3labs/attachr/internal/tui/theme"
)

// ProductSource serves pages of the seller's own products.
type ProductSource interface {
	List(ctx context.Context, q seller.ListQuery) (seller.ProductList, bool, error)
}

// productsLoadedMsg carries one page of the seller's products. seq ties the
// response to the request that produced it.
type productsLoadedMsg struct {
	seq    int
	list   seller.ProductList
	cached bool
	err    error
}

// ProductList shows the seller's catalog, one page at a time.
type ProductList struct {
	ctx      context.Context
	source   ProductSource
	pageSize int
	timeout  time.Duration

	offset  int
	seq     int
	loading bool
	err     error
	list    seller.ProductList
	cached  bool
	cursor  int
}

// NewProductList creates the product list component.
func NewProductList(ctx context.Context, source ProductSource, pageSize int, timeout time.Duration) *ProductList {
	if pageSize <= 0 {
		pageSize = 10
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ProductList{ctx: ctx, source: source, pageSize: pageSize, timeout: timeout}
}

// Load fetches the current page.
func (p *ProductList) Load() tea.Cmd {
	if p.source == nil {
		return nil
	}
	p.seq++
	p.loading = true
	p.err = nil

	seq, source, timeout := p.seq, p.source, p.timeout
	q := seller.ListQuery{Limit: p.pageSize, Offset: p.offset}
	parent := p.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		list, cached, err := source.List(ctx, q)
		return productsLoadedMsg{seq: seq, list: list, cached: cached, err: err}
	}
}

// Loading reports whether a page request is in flight.
func (p *ProductList) Loading() bool {
	return p.loading
}

// Products returns the products of the current page.
func (p *ProductList) Products() []seller.Product {
	return p.list.Products
}

// Update handles messages for the product list.
func (p *ProductList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		if msg.seq != p.seq {
			return nil
		}
		p.loading = false
		if msg.err != nil {
			logger.Warn("loading seller products failed: %v", msg.err)
			p.err = msg.err
			return nil
		}
		p.list = msg.list
		p.cached = msg.cached
		p.cursor = min(p.cursor, max(len(msg.list.Products)-1, 0))
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.list.Products)-1 {
				p.cursor++
			}
		case "right", "l":
			if p.offset+p.pageSize < p.list.Count {
				p.offset += p.pageSize
				p.cursor = 0
				return p.Load()
			}
		case "left", "h":
			if p.offset > 0 {
				p.offset = max(p.offset-p.pageSize, 0)
				p.cursor = 0
				return p.Load()
			}
		}
	}
	return nil
}

// View renders the product table into width columns.
func (p *ProductList) View(width int) string {
	s := theme.Current().S()
	var b strings.Builder

	switch {
	case p.err != nil:
		b.WriteString(s.Error.Render("Error: " + p.err.Error()))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("Press r to retry"))
		return b.String()
	case p.loading && len(p.list.Products) == 0:
		return s.Muted.Render("Loading products...")
	case len(p.list.Products) == 0:
		return s.Muted.Render("No products yet. Press a to attach products from the global catalog.")
	}

	statusWidth := 11
	variantsWidth := 9
	titleWidth := max(width-statusWidth-variantsWidth-4, 10)

	b.WriteString(s.TableHeader.Render(
		pad("Title", titleWidth+2) + pad("Variants", variantsWidth) + "Status"))
	b.WriteString("\n")
	for i, prod := range p.list.Products {
		marker := "  "
		if i == p.cursor {
			marker = "> "
		}
		row := marker + pad(prod.Title, titleWidth) + pad(fmt.Sprintf("%d", prod.Variants), variantsWidth)
		if i == p.cursor {
			row = s.RowCursor.Render(row)
		}
		b.WriteString(row + statusBadge(prod.Status) + "\n")
	}

	first := p.offset + 1
	last := p.offset + len(p.list.Products)
	footer := fmt.Sprintf("Showing %d-%d of %d", first, last, p.list.Count)
	if p.cached {
		footer += " · cached"
	}
	if p.loading {
		footer += " · refreshing"
	}
	b.WriteString("\n")
	b.WriteString(s.Subtle.Render(footer))
	return b.String()
}

func pad(text string, width int) string {
	text = ansi.Truncate(text, width-1, "…")
	if w := ansi.StringWidth(text); w < width {
		text += strings.Repeat(" ", width-w)
	}
	return text
}

func statusBadge(status string) string {
	s := theme.Current().S()
	switch status {
	case "published":
		return s.BadgeSuccess.Render(status)
	case "draft":
		return s.BadgeMuted.Render(status)
	case "proposed":
		return s.BadgeWarning.Render(status)
	case "rejected":
		return s.BadgeError.Render(status)
	}
	return s.BadgeInfo.Render(status)
}
