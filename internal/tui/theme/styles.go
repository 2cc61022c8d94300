package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style

	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style
	SectionTitle   lipgloss.Style

	Text    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	TableHeader lipgloss.Style
	RowCursor   lipgloss.Style
	RowDisabled lipgloss.Style

	BadgeSuccess lipgloss.Style
	BadgeWarning lipgloss.Style
	BadgeError   lipgloss.Style
	BadgeInfo    lipgloss.Style
	BadgeMuted   lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
}
