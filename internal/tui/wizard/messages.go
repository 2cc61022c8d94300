package wizard

import (
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/draft"
)

// referenceLoadedMsg carries the regions and stock locations loaded on open.
type referenceLoadedMsg struct {
	gen       uint64
	regions   []catalog.Region
	locations []catalog.StockLocation
	err       error
}

// searchDebounceMsg fires once the query has been stable for the debounce interval.
type searchDebounceMsg struct {
	gen uint64
	tag int
}

type searchResultMsg struct {
	gen    uint64
	seq    int
	result catalog.SearchResult
	err    error
}

type detailLoadedMsg struct {
	gen    uint64
	detail catalog.ProductDetail
	err    error
}

type attachDoneMsg struct {
	gen      uint64
	title    string
	variants int
	err      error
}

// ProductSelectedMsg is sent by the search step when an attachable product is picked.
type ProductSelectedMsg struct {
	Product catalog.Product
}

// VariantsConfirmedMsg is sent by the configure step when Next is pressed on a valid selection.
type VariantsConfirmedMsg struct {
	Selection draft.Selection
}

// BackMsg is sent when a step's Back button is pressed.
type BackMsg struct{}

// NotifyKind selects the toast style.
type NotifyKind int

const (
	NotifySuccess NotifyKind = iota
	NotifyError
)

// NotifyMsg asks the host to show a toast.
type NotifyMsg struct {
	Kind        NotifyKind
	Header      string
	Description string
}

// ClosedMsg is sent to the host whenever the wizard closes.
type ClosedMsg struct {
	Attached bool
}
