package catalog

// Page describes a window over a counted result set.
type Page struct {
	Offset int
	Limit  int
	Count  int
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return p.Offset+p.Limit < p.Count
}

// HasPrev reports whether a preceding page exists.
func (p Page) HasPrev() bool {
	return p.Offset > 0
}

// Index returns the zero-based page number.
func (p Page) Index() int {
	if p.Limit <= 0 {
		return 0
	}
	return p.Offset / p.Limit
}

// Total returns the number of pages (0 when Count is 0).
func (p Page) Total() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Count + p.Limit - 1) / p.Limit
}

// Range returns the 1-based first and last item numbers shown on the page.
func (p Page) Range() (from, to int) {
	if p.Count == 0 {
		return 0, 0
	}
	from = p.Offset + 1
	to = p.Offset + p.Limit
	if to > p.Count {
		to = p.Count
	}
	return from, to
}
