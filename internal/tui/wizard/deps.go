package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/attachr/internal/api"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/config"
	"github.com/mark3labs/attachr/internal/journal"
)

// ReferenceData supplies the seller's regions and stock locations.
type ReferenceData interface {
	Regions(ctx context.Context) ([]catalog.Region, error)
	StockLocations(ctx context.Context) ([]catalog.StockLocation, error)
}

// Invalidator drops cached seller product lists after a successful attach.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Recorder keeps a record of attach attempts.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// Deps wires the wizard to its collaborators. Invalidator, Journal and
// OnSuccess are optional.
type Deps struct {
	Gateway        catalog.Gateway
	Reference      ReferenceData
	Invalidator    Invalidator
	Journal        Recorder
	Debounce       time.Duration
	RequestTimeout time.Duration

	// OnSuccess is called exactly once per confirmed attach.
	OnSuccess func()
}

// SearchPageSize is the fixed number of catalog products per search page.
const SearchPageSize = 10

const defaultTimeout = 15 * time.Second

func (d Deps) withDefaults() Deps {
	if d.Debounce < config.MinSearchDebounce {
		d.Debounce = config.MinSearchDebounce
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = defaultTimeout
	}
	return d
}

func (d Deps) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.RequestTimeout)
}

const attachFallbackMessage = "Failed to attach products. Please try again."

// failureMessage picks the text shown for a failed request.
func failureMessage(err error) string {
	var fe *api.FetchError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe) && fe.Message != "":
		return fe.Message
	case errors.Is(err, catalog.ErrAttachRejected):
		return "The catalog service did not accept the attachment."
	case errors.Is(err, context.DeadlineExceeded):
		return "The request timed out."
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return attachFallbackMessage
}
