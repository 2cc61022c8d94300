package main

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/config"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/seller"
	"github.com/mark3labs/attachr/internal/tui"
	"github.com/mark3labs/attachr/internal/tui/wizard"
	"github.com/spf13/cobra"
)

var attachFlags struct {
	catalog string
	noOpen  bool
}

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach catalog products to your seller catalog",
	Long: `Open the attach wizard.

The wizard walks through three steps: search the global catalog and pick a
published product, select variants and set your SKU, prices and stock, then
review and submit. The wizard only opens when the global product catalog is
enabled for your store (or forced with --catalog on).

Press a on the product list to open the wizard again, q to quit.`,
	RunE: runAttach,
}

func init() {
	attachCmd.Flags().StringVar(&attachFlags.catalog, "catalog", "", "Override the catalog feature flag (auto, on, off)")
	attachCmd.Flags().BoolVar(&attachFlags.noOpen, "no-open", false, "Start on the product list instead of opening the wizard")
}

func runAttach(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if attachFlags.catalog != "" {
		cfg.Catalog = attachFlags.catalog
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --catalog value: %w", err)
		}
	}

	svc, err := newServices(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
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

	app := tui.NewApp(ctx, appOptions(cfg, svc.gateway, svc.seller, st, !attachFlags.noOpen))

	if _, err := tea.NewProgram(app, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

// appOptions wires the host app. page_size only applies to the seller
// product list; catalog search pages are always wizard.SearchPageSize.
func appOptions(cfg *config.Config, gateway catalog.Gateway, sellerSvc *seller.Service, st *store, openWizard bool) tui.Options {
	return tui.Options{
		Wizard: wizard.Deps{
			Gateway:        gateway,
			Reference:      sellerSvc,
			Invalidator:    st.products,
			Journal:        st.journal,
			Debounce:       cfg.SearchDebounce,
			RequestTimeout: cfg.RequestTimeout,
			OnSuccess: func() {
				logger.Info("attach completed")
			},
		},
		Products:        st.products,
		Flag:            sellerSvc,
		CatalogOverride: cfg.Catalog,
		PageSize:        cfg.PageSize,
		RequestTimeout:  cfg.RequestTimeout,
		OpenWizard:      openWizard,
	}
}
