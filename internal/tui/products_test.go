package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/attachr/internal/seller"
	"github.com/mark3labs/attachr/internal/tui/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadPage(t *testing.T, p *ProductList, cmd tea.Cmd) {
	t.Helper()
	msg, ok := testfixtures.FindMsg[productsLoadedMsg](t, cmd)
	require.True(t, ok)
	p.Update(msg)
}

func manySellerProducts(n int) []seller.Product {
	out := make([]seller.Product, n)
	for i := range out {
		out[i] = seller.Product{ID: string(rune('a' + i)), Title: "Item " + string(rune('A'+i)), Status: "published", Variants: 1}
	}
	return out
}

func TestProductList_Paging(t *testing.T) {
	src := &testfixtures.MockProducts{Products: manySellerProducts(5)}
	p := NewProductList(context.Background(), src, 2, time.Second)
	loadPage(t, p, p.Load())

	assert.Contains(t, ansi.Strip(p.View(80)), "Showing 1-2 of 5")

	assert.Nil(t, p.Update(testfixtures.Key(tea.KeyLeft)), "no previous page")
	loadPage(t, p, p.Update(testfixtures.Key(tea.KeyRight)))
	loadPage(t, p, p.Update(testfixtures.Key(tea.KeyRight)))
	assert.Contains(t, ansi.Strip(p.View(80)), "Showing 5-5 of 5")
	assert.Nil(t, p.Update(testfixtures.Key(tea.KeyRight)), "no next page")

	queries := src.Queries()
	require.Len(t, queries, 3)
	assert.Equal(t, 4, queries[2].Offset)
}

func TestProductList_DropsStaleResponses(t *testing.T) {
	src := &testfixtures.MockProducts{Products: testfixtures.SellerProducts()}
	p := NewProductList(context.Background(), src, 10, time.Second)

	first := p.Load()
	second := p.Load()
	stale, ok := testfixtures.FindMsg[productsLoadedMsg](t, first)
	require.True(t, ok)
	p.Update(stale)
	assert.True(t, p.Loading())

	loadPage(t, p, second)
	assert.False(t, p.Loading())
	assert.Len(t, p.Products(), 2)
}

func TestProductList_ErrorAndEmpty(t *testing.T) {
	src := &testfixtures.MockProducts{Err: errors.New("unauthorized")}
	p := NewProductList(context.Background(), src, 10, time.Second)
	loadPage(t, p, p.Load())
	assert.Contains(t, ansi.Strip(p.View(80)), "Error: unauthorized")

	src.Err = nil
	loadPage(t, p, p.Load())
	assert.Contains(t, ansi.Strip(p.View(80)), "No products yet")
}
