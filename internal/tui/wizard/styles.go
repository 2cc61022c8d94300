package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/tui/theme"
)

func styles() *theme.Styles {
	return theme.Current().S()
}

// renderHintBar renders a hint bar with the given key-description pairs.
// Example: renderHintBar("↑↓", "navigate", "enter", "select", "esc", "back")
// Returns: "↑↓ navigate • enter select • esc back"
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := styles()
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		b.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

// cell truncates or pads text to exactly width columns.
func cell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	text = ansi.Truncate(text, width, "…")
	if pad := width - ansi.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}

// statusBadge renders a product status as a colored badge.
func statusBadge(status catalog.Status) string {
	s := styles()
	switch status {
	case catalog.StatusPublished:
		return s.BadgeSuccess.Render(string(status))
	case catalog.StatusProposed:
		return s.BadgeWarning.Render(string(status))
	}
	if !status.Valid() {
		return s.BadgeMuted.Render("unknown")
	}
	return s.BadgeMuted.Render(string(status))
}

func checkbox(checked, disabled bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	if disabled {
		return styles().RowDisabled.Render(box)
	}
	return box
}

// alert renders a one-line error box.
func alert(title, body string, width int) string {
	s := styles()
	content := s.Error.Bold(true).Render("! "+title) + "\n" + s.Subtle.Render(body)
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(theme.Current().Error)).
		PaddingLeft(1).
		Width(width).
		Render(content)
}
