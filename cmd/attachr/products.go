package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/seller"
	"github.com/spf13/cobra"
)

var productsFlags struct {
	query   string
	limit   int
	offset  int
	refresh bool
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the products in your seller catalog",
	Long: `List the products in your seller catalog.

Pages are served from the local cache when possible. A successful attach
clears the cache; --refresh clears it explicitly.`,
	RunE: runProducts,
}

func init() {
	productsCmd.Flags().StringVarP(&productsFlags.query, "query", "q", "", "Filter by search text")
	productsCmd.Flags().IntVar(&productsFlags.limit, "limit", 20, "Page size")
	productsCmd.Flags().IntVar(&productsFlags.offset, "offset", 0, "Page offset")
	productsCmd.Flags().BoolVar(&productsFlags.refresh, "refresh", false, "Clear the cache before listing")
}

func runProducts(cmd *cobra.Command, args []string) error {
	if productsFlags.limit <= 0 {
		return fmt.Errorf("--limit must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newServices(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	st, err := openStore(ctx, cfg, svc.seller)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("closing local store: %v", err)
		}
	}()

	if productsFlags.refresh {
		if err := st.products.Invalidate(ctx); err != nil {
			return fmt.Errorf("clearing product cache: %w", err)
		}
	}

	list, cached, err := st.products.List(ctx, seller.ListQuery{
		Query:  productsFlags.query,
		Limit:  productsFlags.limit,
		Offset: productsFlags.offset,
	})
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(list.Products) == 0 {
		fmt.Fprintln(out, "No products")
		return nil
	}

	rows := make([][]string, 0, len(list.Products))
	for _, p := range list.Products {
		rows = append(rows, []string{p.ID, p.Title, strconv.Itoa(p.Variants), p.Status})
	}
	printTable(out, []string{"ID", "Title", "Variants", "Status"}, rows)

	source := "backend"
	if cached {
		source = "cache"
	}
	fmt.Fprintf(out, "Showing %d-%d of %d (from %s)\n",
		productsFlags.offset+1, productsFlags.offset+len(list.Products), list.Count, source)
	return nil
}
