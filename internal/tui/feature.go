package tui

import (
	"context"
	"fmt"

	"github.com/mark3labs/attachr/internal/config"
)

// FeatureFlag reports whether the store has the global product catalog enabled.
type FeatureFlag interface {
	CatalogEnabled(ctx context.Context) (bool, error)
}

// ResolveCatalogFeature decides whether the attach entry point is available.
// An explicit "on" or "off" override wins; otherwise the backend is asked.
func ResolveCatalogFeature(ctx context.Context, override string, flag FeatureFlag) (bool, error) {
	switch override {
	case config.CatalogOn:
		return true, nil
	case config.CatalogOff:
		return false, nil
	case "", config.CatalogAuto:
	default:
		return false, fmt.Errorf("invalid catalog setting %q", override)
	}
	if flag == nil {
		return false, nil
	}
	enabled, err := flag.CatalogEnabled(ctx)
	if err != nil {
		return false, fmt.Errorf("reading store configuration: %w", err)
	}
	return enabled, nil
}
