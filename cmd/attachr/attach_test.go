package main

import (
	"testing"
	"time"

	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/config"
	"github.com/mark3labs/attachr/internal/tui/testfixtures"
	"github.com/mark3labs/attachr/internal/tui/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppOptions_PageSizeOnlyAppliesToProductList(t *testing.T) {
	cfg := config.Defaults()
	cfg.PageSize = 25
	cfg.Catalog = config.CatalogOn
	gw := testfixtures.NewMockGateway()

	opts := appOptions(cfg, gw, nil, &store{}, false)
	assert.Equal(t, 25, opts.PageSize)
	assert.Equal(t, config.CatalogOn, opts.CatalogOverride)
	assert.False(t, opts.OpenWizard)

	step := wizard.NewSearchStep(opts.Wizard, 1)
	testfixtures.Collect(t, step.Init(), 200*time.Millisecond)

	queries := gw.SearchQueries()
	require.Len(t, queries, 1)
	assert.Equal(t, catalog.SearchQuery{Query: "", Limit: wizard.SearchPageSize, Offset: 0}, queries[0])
	assert.Equal(t, 10, queries[0].Limit)
}
