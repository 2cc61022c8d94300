package api

import (
	"errors"
	"fmt"
	"net/http"
)

// FetchError is returned for any non-2xx response from the backend.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a FetchError with status 404.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Status == http.StatusNotFound
}

// errorBody covers the error shapes the backend and the proxy produce.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (b errorBody) text() string {
	switch {
	case b.Message != "":
		return b.Message
	case b.Error != "" && b.Details != "":
		return b.Error + ": " + b.Details
	default:
		return b.Error
	}
}
