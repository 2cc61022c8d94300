package wizard

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/config"
	"github.com/mark3labs/attachr/internal/tui/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearch(t *testing.T, gw *testfixtures.MockGateway) *SearchStep {
	t.Helper()
	s := NewSearchStep(Deps{Gateway: gw, RequestTimeout: time.Second}, 1)
	s.SetSize(100, 30)
	res, ok := testfixtures.FindMsg[searchResultMsg](t, s.Init())
	require.True(t, ok)
	s.Update(res)
	return s
}

func TestSearchStep_InitialSearchIsUnfiltered(t *testing.T) {
	gw := testfixtures.NewMockGateway()
	s := newSearch(t, gw)

	queries := gw.SearchQueries()
	require.Len(t, queries, 1)
	assert.Equal(t, catalog.SearchQuery{Query: "", Limit: 10, Offset: 0}, queries[0])

	view := testfixtures.Plain(s.View())
	assert.Contains(t, view, "Classic Tee")
	assert.Contains(t, view, "Summer")
	assert.Contains(t, view, "published")
	assert.Contains(t, view, "draft")
	assert.Contains(t, view, "Showing 1-3 of 3")
	assert.Contains(t, view, "Page 1 of 1")
}

func TestSearchStep_DebounceFloor(t *testing.T) {
	s := NewSearchStep(Deps{Gateway: testfixtures.NewMockGateway(), Debounce: 10 * time.Millisecond}, 1)
	assert.Equal(t, config.MinSearchDebounce, s.deps.Debounce)
}

// Only published products can be picked; other rows are a silent no-op.
func TestSearchStep_SelectOnlyPublished(t *testing.T) {
	s := newSearch(t, testfixtures.NewMockGateway())

	msg, ok := testfixtures.FindMsg[ProductSelectedMsg](t, s.Update(testfixtures.Key(tea.KeyEnter)))
	require.True(t, ok)
	assert.Equal(t, "prod_tee", msg.Product.ID)

	s.Update(testfixtures.Key(tea.KeyDown)) // draft
	assert.Nil(t, s.Update(testfixtures.Key(tea.KeyEnter)))

	s.Update(testfixtures.Key(tea.KeyDown)) // proposed
	assert.Nil(t, s.Update(testfixtures.Key(tea.KeyEnter)))

	s.Update(testfixtures.Key(tea.KeyDown)) // stays on last row
	assert.Equal(t, 2, s.cursor)
}

func TestSearchStep_Pagination(t *testing.T) {
	gw := testfixtures.NewMockGateway()
	gw.Products = testfixtures.ManyProducts(25)
	s := newSearch(t, gw)

	assert.Nil(t, s.PrevPage(), "no previous page on the first page")

	res, ok := testfixtures.FindMsg[searchResultMsg](t, s.NextPage())
	require.True(t, ok)
	s.Update(res)
	assert.Equal(t, 1, s.Page())
	assert.Contains(t, testfixtures.Plain(s.View()), "Showing 11-20 of 25")

	res, ok = testfixtures.FindMsg[searchResultMsg](t, s.NextPage())
	require.True(t, ok)
	s.Update(res)
	assert.Equal(t, 2, s.Page())
	assert.Contains(t, testfixtures.Plain(s.View()), "Page 3 of 3")

	assert.Nil(t, s.NextPage(), "offset+limit >= count disables next")
	assert.Equal(t, 2, s.Page())

	queries := gw.SearchQueries()
	assert.Equal(t, 20, queries[len(queries)-1].Offset)
}

func TestSearchStep_QueryChangeResetsPage(t *testing.T) {
	gw := testfixtures.NewMockGateway()
	gw.Products = testfixtures.ManyProducts(25)
	s := newSearch(t, gw)

	res, ok := testfixtures.FindMsg[searchResultMsg](t, s.NextPage())
	require.True(t, ok)
	s.Update(res)
	require.Equal(t, 1, s.Page())

	var cmd tea.Cmd
	for _, k := range testfixtures.Type("tee") {
		cmd = s.Update(k)
	}
	// Nothing is sent until the debounce fires
	assert.Equal(t, "", s.Query())
	assert.Equal(t, 1, s.Page())

	debounce, ok := testfixtures.FindMsg[searchDebounceMsg](t, cmd)
	require.True(t, ok)
	assert.Equal(t, s.tag, debounce.tag)

	res, ok = testfixtures.FindMsg[searchResultMsg](t, s.Update(debounce))
	require.True(t, ok)
	s.Update(res)
	assert.Equal(t, "tee", s.Query())
	assert.Equal(t, 0, s.Page())

	queries := gw.SearchQueries()
	assert.Equal(t, catalog.SearchQuery{Query: "tee", Limit: 10, Offset: 0}, queries[len(queries)-1])
}

func TestSearchStep_StaleDebounceIgnored(t *testing.T) {
	gw := testfixtures.NewMockGateway()
	s := newSearch(t, gw)

	s.Update(testfixtures.Type("a")[0])
	staleTag := s.tag
	s.Update(testfixtures.Type("b")[0])

	assert.Nil(t, s.Update(searchDebounceMsg{gen: 1, tag: staleTag}))
	assert.Equal(t, "", s.Query())
	assert.Nil(t, s.Update(searchDebounceMsg{gen: 2, tag: s.tag}), "other session")
	assert.Len(t, gw.SearchQueries(), 1)
}

func TestSearchStep_OutOfOrderResponsesDropped(t *testing.T) {
	gw := testfixtures.NewMockGateway()
	gw.Products = testfixtures.ManyProducts(25)
	s := newSearch(t, gw)

	first, ok := testfixtures.FindMsg[searchResultMsg](t, s.NextPage())
	require.True(t, ok)
	second, ok := testfixtures.FindMsg[searchResultMsg](t, s.NextPage())
	require.True(t, ok)

	s.Update(second)
	assert.False(t, s.Loading())
	assert.Equal(t, "Product 21", s.result.Products[0].Title)

	s.Update(first)
	assert.Equal(t, "Product 21", s.result.Products[0].Title, "older response must not overwrite")
}

func TestSearchStep_ErrorState(t *testing.T) {
	gw := testfixtures.NewMockGateway()
	gw.SearchErr = errors.New("connection refused")
	s := NewSearchStep(Deps{Gateway: gw, RequestTimeout: time.Second}, 1)

	cmd := s.Init()
	assert.True(t, s.Loading())
	assert.Contains(t, testfixtures.Plain(s.View()), "Searching catalog")

	res, ok := testfixtures.FindMsg[searchResultMsg](t, cmd)
	require.True(t, ok)
	s.Update(res)
	assert.False(t, s.Loading())
	assert.Contains(t, testfixtures.Plain(s.View()), "connection refused")
	assert.Nil(t, s.Update(testfixtures.Key(tea.KeyEnter)))
	assert.Len(t, gw.SearchQueries(), 1, "no automatic retry")
}

func TestSearchStep_EmptyResults(t *testing.T) {
	gw := testfixtures.NewMockGateway()
	gw.Products = nil
	s := newSearch(t, gw)
	view := testfixtures.Plain(s.View())
	assert.Contains(t, view, "No products found")
	assert.Contains(t, view, "Showing 0-0 of 0")
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, "published", strings.TrimSpace(testfixtures.Plain(statusBadge(catalog.StatusPublished))))
	assert.Equal(t, "draft", strings.TrimSpace(testfixtures.Plain(statusBadge(catalog.StatusDraft))))
	assert.Equal(t, "unknown", strings.TrimSpace(testfixtures.Plain(statusBadge(""))))
	assert.Equal(t, "unknown", strings.TrimSpace(testfixtures.Plain(statusBadge("archived"))))
}
