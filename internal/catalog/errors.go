package catalog

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a product id is unknown to the catalog.
	ErrNotFound = errors.New("catalog product not found")
	// ErrAttachRejected is returned when the backend acknowledges an attach with success=false.
	ErrAttachRejected = errors.New("attach was not accepted by the catalog service")
)

// FailureKind groups gateway errors by how they are presented.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNotFound
	FailureNetwork
	FailureAttach
	FailureCanceled
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureNotFound:
		return "not_found"
	case FailureNetwork:
		return "network"
	case FailureAttach:
		return "attach"
	case FailureCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Classify maps a gateway error onto a FailureKind.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrNotFound):
		return FailureNotFound
	case errors.Is(err, ErrAttachRejected):
		return FailureAttach
	case errors.Is(err, context.Canceled):
		return FailureCanceled
	default:
		return FailureNetwork
	}
}
