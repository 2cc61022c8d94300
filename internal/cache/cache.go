// Package cache keeps pages of the seller's product list in the embedded
// JetStream KV bucket so repeated listings skip the backend. A successful
// attach purges the bucket.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/seller"
	"github.com/nats-io/nats.go/jetstream"
)

// Lister fetches a page of the seller's products from the backend.
type Lister interface {
	ListProducts(ctx context.Context, q seller.ListQuery) (seller.ProductList, error)
}

// ProductLists is a read-through cache of seller product-list pages.
type ProductLists struct {
	kv     jetstream.KeyValue
	source Lister
}

// NewProductLists creates a cache over kv that falls back to source.
func NewProductLists(kv jetstream.KeyValue, source Lister) *ProductLists {
	return &ProductLists{kv: kv, source: source}
}

// Key returns the bucket key for a query, e.g. "blue-shirt-10-20".
// An empty search text maps to "all".
func Key(q seller.ListQuery) string {
	text := slug.Make(q.Query)
	if text == "" {
		text = "all"
	}
	return fmt.Sprintf("%s-%d-%d", text, q.Limit, q.Offset)
}

// List returns the page for q and whether it came from the cache. Cache
// failures are logged and the backend is asked instead.
func (p *ProductLists) List(ctx context.Context, q seller.ListQuery) (seller.ProductList, bool, error) {
	key := Key(q)

	entry, err := p.kv.Get(ctx, key)
	switch {
	case err == nil:
		var list seller.ProductList
		if err := json.Unmarshal(entry.Value(), &list); err == nil {
			logger.Debug("product list cache hit: %s", key)
			return list, true, nil
		}
		logger.Warn("discarding malformed cache entry %s", key)
	case !errors.Is(err, jetstream.ErrKeyNotFound):
		logger.Warn("product list cache read failed for %s: %v", key, err)
	}

	list, err := p.source.ListProducts(ctx, q)
	if err != nil {
		return seller.ProductList{}, false, err
	}

	data, err := json.Marshal(list)
	if err != nil {
		return list, false, nil
	}
	if _, err := p.kv.Put(ctx, key, data); err != nil {
		logger.Warn("product list cache write failed for %s: %v", key, err)
	}
	return list, false, nil
}

// Invalidate purges every cached page.
func (p *ProductLists) Invalidate(ctx context.Context) error {
	keys, err := p.kv.Keys(ctx)
	if errors.Is(err, jetstream.ErrNoKeysFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("listing cache keys: %w", err)
	}

	var errs []error
	for _, key := range keys {
		if err := p.kv.Purge(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("purge %s: %w", key, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.Debug("product list cache invalidated (%d keys)", len(keys))
	return nil
}
