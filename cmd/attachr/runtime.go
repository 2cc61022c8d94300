package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mark3labs/attachr/internal/api"
	"github.com/mark3labs/attachr/internal/cache"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/config"
	"github.com/mark3labs/attachr/internal/journal"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/nats"
	"github.com/mark3labs/attachr/internal/seller"
)

// productListTTL bounds how long a cached product-list page is served.
const productListTTL = 10 * time.Minute

var globalFlags struct {
	backendURL string
	proxyURL   string
	dataDir    string
	logLevel   string
	logFile    string
}

// loadConfig loads the layered config, applies flag overrides on top and
// configures the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if globalFlags.backendURL != "" {
		cfg.BackendURL = globalFlags.backendURL
	}
	if globalFlags.proxyURL != "" {
		cfg.ProxyURL = globalFlags.proxyURL
	}
	if globalFlags.dataDir != "" {
		cfg.DataDir = globalFlags.dataDir
	}
	if globalFlags.logLevel != "" {
		cfg.LogLevel = globalFlags.logLevel
	}
	if globalFlags.logFile != "" {
		cfg.LogFile = globalFlags.logFile
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Default.SetLevel(level)
	if cfg.LogFile != "" {
		if err := logger.Default.SetFile(cfg.LogFile); err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		if !config.Exists() {
			return nil, fmt.Errorf("invalid configuration: %w\n\nNo config file found. Run 'attachr setup' to create one", err)
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// services bundles the backend clients shared by the commands.
type services struct {
	cfg     *config.Config
	gateway *catalog.HTTPGateway
	seller  *seller.Service
}

func newServices(cfg *config.Config) (*services, error) {
	client, err := api.NewClientFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}
	return &services{
		cfg:     cfg,
		gateway: catalog.NewHTTPGateway(client),
		seller:  seller.NewService(client),
	}, nil
}

// store is the embedded local store with the product-list cache and the
// attach journal on top.
type store struct {
	embedded *nats.Embedded
	products *cache.ProductLists
	journal  *journal.Journal
}

func openStore(ctx context.Context, cfg *config.Config, source cache.Lister) (*store, error) {
	embedded, err := nats.Open(filepath.Join(cfg.DataDir, "nats"))
	if err != nil {
		return nil, fmt.Errorf("failed to start local store: %w", err)
	}

	kv, err := nats.SetupProductListBucket(ctx, embedded.JS, productListTTL)
	if err != nil {
		_ = embedded.Close()
		return nil, err
	}
	j, err := journal.Open(ctx, embedded.JS)
	if err != nil {
		_ = embedded.Close()
		return nil, err
	}

	return &store{
		embedded: embedded,
		products: cache.NewProductLists(kv, source),
		journal:  j,
	}, nil
}

func (s *store) Close() error {
	return s.embedded.Close()
}
