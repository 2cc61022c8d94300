package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPage_Boundaries(t *testing.T) {
	tests := []struct {
		offset   int
		wantNext bool
		wantPrev bool
	}{
		{offset: 0, wantNext: true, wantPrev: false},
		{offset: 10, wantNext: true, wantPrev: true},
		{offset: 20, wantNext: false, wantPrev: true},
	}

	for _, tt := range tests {
		p := Page{Offset: tt.offset, Limit: 10, Count: 25}
		require.Equal(t, tt.wantNext, p.HasNext(), "offset %d next", tt.offset)
		require.Equal(t, tt.wantPrev, p.HasPrev(), "offset %d prev", tt.offset)
	}
}

func TestPage_Counters(t *testing.T) {
	p := Page{Offset: 20, Limit: 10, Count: 25}
	require.Equal(t, 2, p.Index())
	require.Equal(t, 3, p.Total())
	from, to := p.Range()
	require.Equal(t, 21, from)
	require.Equal(t, 25, to)

	empty := Page{Limit: 10}
	require.Equal(t, 0, empty.Total())
	require.False(t, empty.HasNext())
	from, to = empty.Range()
	require.Zero(t, from)
	require.Zero(t, to)
}
