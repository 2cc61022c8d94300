// Package draft holds the attach wizard's session state: the selected catalog
// product, its variants and the per-variant attachment configuration.
//
// Selection values are immutable snapshots. Every edit returns a new
// Selection and leaves the receiver untouched, so a step can compare or keep
// an older snapshot without copying it first.
package draft

import "github.com/mark3labs/attachr/internal/catalog"

// Selection maps variant ids to their attachment configuration and remembers
// the order in which variants were selected.
type Selection struct {
	order []string
	items map[string]catalog.AttachmentConfig
}

// Len returns the number of selected variants.
func (s Selection) Len() int {
	return len(s.order)
}

// Has reports whether the variant is selected.
func (s Selection) Has(variantID string) bool {
	_, ok := s.items[variantID]
	return ok
}

// Get returns a copy of the variant's configuration.
func (s Selection) Get(variantID string) (catalog.AttachmentConfig, bool) {
	cfg, ok := s.items[variantID]
	if !ok {
		return catalog.AttachmentConfig{}, false
	}
	return cfg.Clone(), true
}

// IDs returns the selected variant ids in selection order.
func (s Selection) IDs() []string {
	return append([]string(nil), s.order...)
}

// Configs returns copies of all configurations in selection order.
func (s Selection) Configs() []catalog.AttachmentConfig {
	out := make([]catalog.AttachmentConfig, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id].Clone())
	}
	return out
}

// clone copies the index structures; configurations are copied on write.
func (s Selection) clone() Selection {
	out := Selection{
		order: append([]string(nil), s.order...),
		items: make(map[string]catalog.AttachmentConfig, len(s.items)+1),
	}
	for k, v := range s.items {
		out.items[k] = v
	}
	return out
}

// Put adds or replaces a configuration. A replaced entry keeps its position.
func (s Selection) Put(cfg catalog.AttachmentConfig) Selection {
	out := s.clone()
	if _, ok := out.items[cfg.VariantID]; !ok {
		out.order = append(out.order, cfg.VariantID)
	}
	out.items[cfg.VariantID] = cfg.Clone()
	return out
}

// Remove drops a variant. Removing an unselected variant returns s unchanged.
func (s Selection) Remove(variantID string) Selection {
	if !s.Has(variantID) {
		return s
	}
	out := s.clone()
	delete(out.items, variantID)
	for i, id := range out.order {
		if id == variantID {
			out.order = append(out.order[:i], out.order[i+1:]...)
			break
		}
	}
	return out
}

// Update applies fn to a copy of the variant's configuration. Unselected
// variants are left alone.
func (s Selection) Update(variantID string, fn func(cfg *catalog.AttachmentConfig)) Selection {
	cfg, ok := s.Get(variantID)
	if !ok {
		return s
	}
	fn(&cfg)
	cfg.VariantID = variantID
	out := s.clone()
	out.items[variantID] = cfg
	return out
}
