// Package testfixtures provides fakes and helpers for testing the TUI.
//
// The mocks are thread-safe because Bubbletea commands run on their own
// goroutines:
//   - MockGateway: catalog.Gateway with canned results and recorded calls
//   - MockReference: regions and stock locations
//   - MockInvalidator: counts cache invalidations
//   - MockRecorder: keeps journal entries in memory
//   - MockFlag: the global catalog feature flag
//   - MockProducts: the seller's product list
package testfixtures

import (
	"context"
	"sync"

	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/journal"
	"github.com/mark3labs/attachr/internal/seller"
)

// AttachCall records one Attach invocation.
type AttachCall struct {
	Request        catalog.AttachRequest
	IdempotencyKey string
}

// MockGateway is a configurable catalog.Gateway.
type MockGateway struct {
	mu sync.Mutex

	// SearchFunc overrides the default search, which pages over Products.
	SearchFunc func(q catalog.SearchQuery) (catalog.SearchResult, error)
	Products   []catalog.Product
	SearchErr  error

	Details   map[string]catalog.ProductDetail
	DetailErr error

	AttachErr error

	Searches    []catalog.SearchQuery
	DetailCalls []string
	AttachCalls []AttachCall
}

// NewMockGateway returns a gateway serving Products() and TeeDetail().
func NewMockGateway() *MockGateway {
	return &MockGateway{
		Products: Products(),
		Details:  map[string]catalog.ProductDetail{"prod_tee": TeeDetail()},
	}
}

func (g *MockGateway) SearchProducts(_ context.Context, q catalog.SearchQuery) (catalog.SearchResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Searches = append(g.Searches, q)
	if g.SearchFunc != nil {
		return g.SearchFunc(q)
	}
	if g.SearchErr != nil {
		return catalog.SearchResult{}, g.SearchErr
	}
	start := min(q.Offset, len(g.Products))
	end := min(q.Offset+q.Limit, len(g.Products))
	return catalog.SearchResult{
		Products: append([]catalog.Product(nil), g.Products[start:end]...),
		Count:    len(g.Products),
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, nil
}

func (g *MockGateway) GetProductDetail(_ context.Context, id string) (catalog.ProductDetail, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.DetailCalls = append(g.DetailCalls, id)
	if g.DetailErr != nil {
		return catalog.ProductDetail{}, g.DetailErr
	}
	d, ok := g.Details[id]
	if !ok {
		return catalog.ProductDetail{}, catalog.ErrNotFound
	}
	return d, nil
}

func (g *MockGateway) Attach(_ context.Context, req catalog.AttachRequest, key string) (catalog.AttachResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.AttachCalls = append(g.AttachCalls, AttachCall{Request: req, IdempotencyKey: key})
	if g.AttachErr != nil {
		return catalog.AttachResult{}, g.AttachErr
	}
	return catalog.AttachResult{Success: true}, nil
}

// SetAttachErr changes the attach outcome.
func (g *MockGateway) SetAttachErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.AttachErr = err
}

// Attaches returns a copy of the recorded attach calls.
func (g *MockGateway) Attaches() []AttachCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]AttachCall(nil), g.AttachCalls...)
}

// SearchQueries returns a copy of the recorded searches.
func (g *MockGateway) SearchQueries() []catalog.SearchQuery {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]catalog.SearchQuery(nil), g.Searches...)
}

// MockReference serves fixed regions and stock locations.
type MockReference struct {
	mu        sync.Mutex
	regions   []catalog.Region
	locations []catalog.StockLocation
	Err       error
}

// NewMockReference returns reference data with the given lists.
func NewMockReference(regions []catalog.Region, locations []catalog.StockLocation) *MockReference {
	return &MockReference{regions: regions, locations: locations}
}

func (r *MockReference) Regions(context.Context) ([]catalog.Region, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.regions, nil
}

func (r *MockReference) StockLocations(context.Context) ([]catalog.StockLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.locations, nil
}

// MockInvalidator counts Invalidate calls.
type MockInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (m *MockInvalidator) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return nil
}

// Calls returns the number of invalidations.
func (m *MockInvalidator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockRecorder keeps journal entries in memory.
type MockRecorder struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (m *MockRecorder) Record(_ context.Context, e journal.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

// Entries returns a copy of the recorded entries.
func (m *MockRecorder) Entries() []journal.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]journal.Entry(nil), m.entries...)
}

// MockFlag answers the catalog feature check.
type MockFlag struct {
	mu      sync.Mutex
	Enabled bool
	Err     error
	calls   int
}

func (f *MockFlag) CatalogEnabled(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.Enabled, f.Err
}

// Calls returns how often the flag was read.
func (f *MockFlag) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// MockProducts serves a fixed seller product list.
type MockProducts struct {
	mu       sync.Mutex
	Products []seller.Product
	Err      error
	queries  []seller.ListQuery
}

func (m *MockProducts) List(_ context.Context, q seller.ListQuery) (seller.ProductList, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, q)
	if m.Err != nil {
		return seller.ProductList{}, false, m.Err
	}
	start := min(q.Offset, len(m.Products))
	end := min(q.Offset+q.Limit, len(m.Products))
	return seller.ProductList{
		Products: append([]seller.Product(nil), m.Products[start:end]...),
		Count:    len(m.Products),
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, len(m.queries) > 1, nil
}

// Queries returns a copy of the recorded list queries.
func (m *MockProducts) Queries() []seller.ListQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]seller.ListQuery(nil), m.queries...)
}
