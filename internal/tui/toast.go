package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/attachr/internal/tui/theme"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 3 * time.Second

// ToastKind selects the toast colors.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// ToastDismissMsg is sent when the toast with ID should be dismissed.
type ToastDismissMsg struct {
	ID int
}

// Toast is a notification with a header and a description.
// Shows in the bottom-right corner and auto-dismisses after ToastDuration.
type Toast struct {
	id          int
	kind        ToastKind
	header      string
	description string
	visible     bool
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{}
}

// Show displays a toast, replacing any visible one. Dismissals scheduled for
// an earlier toast are ignored.
func (t *Toast) Show(kind ToastKind, header, description string) tea.Cmd {
	t.id++
	t.kind = kind
	t.header = header
	t.description = description
	t.visible = true

	id := t.id
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastDismissMsg{ID: id}
	})
}

// Update handles messages for the toast component.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(ToastDismissMsg); ok && msg.ID == t.id {
		t.visible = false
		t.header = ""
		t.description = ""
	}
	return nil
}

// View renders the toast box, at most maxWidth cells wide.
// Returns empty string if toast is not visible.
func (t *Toast) View(maxWidth int) string {
	if !t.visible {
		return ""
	}

	s := theme.Current().S()
	style := s.ToastSuccess
	if t.kind == ToastError {
		style = s.ToastError
	}

	body := lipgloss.NewStyle().Bold(true).Render(t.header)
	if t.description != "" {
		body += "\n" + t.description
	}

	width := lipgloss.Width(style.Render(body))
	if limit := maxWidth - 2; limit > 0 && width > limit {
		style = style.Width(limit)
	}
	return style.Render(body)
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// Kind returns the kind of the visible toast.
func (t *Toast) Kind() ToastKind {
	return t.kind
}

// Header returns the current header (empty if not visible).
func (t *Toast) Header() string {
	if !t.visible {
		return ""
	}
	return t.header
}

// Description returns the current description (empty if not visible).
func (t *Toast) Description() string {
	if !t.visible {
		return ""
	}
	return t.description
}
