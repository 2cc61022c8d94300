package tui

import (
	"strings"

	"github.com/mark3labs/attachr/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyUpDown = "↑/↓"
	KeyAttach = "a"
	KeyReload = "r"
	KeyPage   = "←/→"
	KeyQuit   = "q"
	KeyCtrlC  = "ctrl+c"
)

// RenderHint renders a single key-description pair.
// Example: RenderHint("enter", "select") -> "enter select"
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
}

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Example: RenderHintBar("a", "attach", "q", "quit") -> "a attach . q quit"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, RenderHint(pairs[i], pairs[i+1]))
	}
	return strings.Join(parts, " "+s.HintSeparator.Render(".")+" ")
}

// HintHome returns the hints of the product list screen. The attach hint
// is only shown when the global catalog is enabled.
func HintHome(catalogEnabled bool) string {
	pairs := []string{KeyUpDown, "scroll", KeyPage, "page", KeyReload, "reload"}
	if catalogEnabled {
		pairs = append(pairs, KeyAttach, "attach from catalog")
	}
	pairs = append(pairs, KeyQuit, "quit")
	return RenderHintBar(pairs...)
}
