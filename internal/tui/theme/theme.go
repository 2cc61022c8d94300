// Package theme holds the color palette and the pre-built lipgloss styles
// shared by every attachr screen.
package theme

import (
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is a string type
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	styles     *Styles
	stylesOnce sync.Once
}

var (
	current     *Theme
	currentOnce sync.Once
)

// Current returns the active theme.
func Current() *Theme {
	currentOnce.Do(func() {
		current = NewCatppuccinMocha()
	})
	return current
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) badge(bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1)
}

func (t *Theme) buildStyles() *Styles {
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),

		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Secondary)).
			Background(lipgloss.Color(t.BgBase)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true).
			Align(lipgloss.Center),
		SectionTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBright)).
			Bold(true),

		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),

		HintKey:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgSurface2)),

		TableHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)).
			Bold(true),
		RowCursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBright)).
			Background(lipgloss.Color(t.BgSurface0)),
		RowDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BgSurface2)),

		BadgeSuccess: t.badge(t.Success),
		BadgeWarning: t.badge(t.Warning),
		BadgeError:   t.badge(t.Error),
		BadgeInfo:    t.badge(t.Info),
		BadgeMuted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)).
			Background(lipgloss.Color(t.BgSurface1)).
			Padding(0, 1),

		ButtonNormal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)).
			Background(lipgloss.Color(t.BgSurface0)).
			Padding(0, 2).
			Margin(0, 1),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)).
			Background(lipgloss.Color(t.BgMantle)).
			Padding(0, 2).
			Margin(0, 1),
		ButtonFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Secondary)).
			Bold(true).
			Padding(0, 2).
			Margin(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Success)).
			Padding(0, 1),
		ToastError: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Error)).
			Padding(0, 1),
	}
}
