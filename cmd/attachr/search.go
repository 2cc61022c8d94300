package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/spf13/cobra"
)

var searchFlags struct {
	limit  int
	offset int
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the global product catalog",
	Long: `Search the global product catalog without opening the TUI.

Only published products can be attached; the status column shows which ones.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchFlags.limit, "limit", 10, "Page size")
	searchCmd.Flags().IntVar(&searchFlags.offset, "offset", 0, "Page offset")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchFlags.limit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}
	if searchFlags.offset < 0 {
		return fmt.Errorf("--offset must be >= 0")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = strings.TrimSpace(args[0])
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()
	res, err := svc.gateway.SearchProducts(ctx, catalog.SearchQuery{
		Query:  query,
		Limit:  searchFlags.limit,
		Offset: searchFlags.offset,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(res.Products) == 0 {
		fmt.Fprintln(out, "No products found")
		return nil
	}

	rows := make([][]string, 0, len(res.Products))
	for _, p := range res.Products {
		collection := p.Collection()
		if collection == "" {
			collection = "-"
		}
		rows = append(rows, []string{p.ID, p.Title, collection, strconv.Itoa(p.VariantsCount), string(p.Status)})
	}
	printTable(out, []string{"ID", "Title", "Collection", "Variants", "Status"}, rows)

	page := catalog.Page{Offset: searchFlags.offset, Limit: searchFlags.limit, Count: res.Count}
	from, to := page.Range()
	fmt.Fprintf(out, "Showing %d-%d of %d · Page %d of %d\n", from, to, res.Count, page.Index()+1, page.Total())
	return nil
}
