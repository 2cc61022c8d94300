package theme

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestCurrentIsStable(t *testing.T) {
	assert.Same(t, Current(), Current())
	assert.Equal(t, "catppuccin-mocha", Current().Name)
	assert.Same(t, Current().S(), Current().S())
}

func TestHexColorRoundTrip(t *testing.T) {
	r, g, b := ParseHexColor("#cba6f7")
	assert.Equal(t, uint8(0xcb), r)
	assert.Equal(t, uint8(0xa6), g)
	assert.Equal(t, uint8(0xf7), b)
	assert.Equal(t, "#cba6f7", FormatHexColor(r, g, b))

	r, g, b = ParseHexColor("bad")
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	assert.Equal(t, "#7f7f7f", InterpolateColor("#000000", "#ffffff", 0.5))
}

func TestApplyGradient_PreservesText(t *testing.T) {
	assert.Empty(t, ApplyGradient("", "#000000", "#ffffff"))
	out := ApplyGradient("ab c", "#000000", "#ffffff")
	assert.Equal(t, 4, lipgloss.Width(out))
}
