package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// DrawText renders plain text at a position
func DrawText(scr uv.Screen, area uv.Rectangle, text string) {
	uv.NewStyledString(text).Draw(scr, area)
}

// DrawStyled renders lipgloss-styled content at a position
func DrawStyled(scr uv.Screen, area uv.Rectangle, style lipgloss.Style, text string) {
	content := style.Width(area.Dx()).Height(area.Dy()).Render(text)
	uv.NewStyledString(content).Draw(scr, area)
}

// DrawHeader renders "Title ──────" across the first row of area and
// returns the area below it.
func DrawHeader(scr uv.Screen, area uv.Rectangle, title string, titleStyle, ruleStyle lipgloss.Style) uv.Rectangle {
	if area.Dy() <= 0 {
		return area
	}
	styledTitle := titleStyle.Render(title)
	ruleWidth := max(area.Dx()-lipgloss.Width(styledTitle)-1, 0)
	DrawText(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1),
		styledTitle+" "+ruleStyle.Render(strings.Repeat("─", ruleWidth)))

	return uv.Rect(area.Min.X, area.Min.Y+1, area.Dx(), area.Dy()-1)
}

// DrawBottomRight renders content anchored to the bottom-right corner of
// area with one cell of margin.
func DrawBottomRight(scr uv.Screen, area uv.Rectangle, content string) {
	w := lipgloss.Width(content)
	h := lipgloss.Height(content)
	x := max(area.Max.X-w-1, area.Min.X)
	y := max(area.Max.Y-h-1, area.Min.Y)
	uv.NewStyledString(content).Draw(scr, uv.Rect(x, y, w, h))
}
