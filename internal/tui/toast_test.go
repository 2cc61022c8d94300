package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestToast_ShowDisplaysHeaderAndDescription(t *testing.T) {
	toast := NewToast()

	cmd := toast.Show(ToastSuccess, "Products attached", "Attached 2 variants of Classic Tee to your catalog")

	if !toast.IsVisible() {
		t.Error("expected toast to be visible after Show()")
	}
	if toast.Header() != "Products attached" {
		t.Errorf("expected header 'Products attached', got %q", toast.Header())
	}
	if toast.Description() != "Attached 2 variants of Classic Tee to your catalog" {
		t.Errorf("unexpected description %q", toast.Description())
	}
	if cmd == nil {
		t.Error("expected Show() to return a command for dismissal")
	}
}

func TestToast_ViewReturnsEmptyWhenNotVisible(t *testing.T) {
	toast := NewToast()

	if view := toast.View(80); view != "" {
		t.Errorf("expected empty view when not visible, got %q", view)
	}
}

func TestToast_ViewRendersBothLines(t *testing.T) {
	toast := NewToast()
	toast.Show(ToastError, "Attach failed", "gateway timeout")

	view := ansi.Strip(toast.View(80))
	if !strings.Contains(view, "Attach failed") {
		t.Errorf("expected header in view, got %q", view)
	}
	if !strings.Contains(view, "gateway timeout") {
		t.Errorf("expected description in view, got %q", view)
	}
	if toast.Kind() != ToastError {
		t.Error("expected error kind")
	}
}

func TestToast_DismissMsgHidesToast(t *testing.T) {
	toast := NewToast()
	toast.Show(ToastSuccess, "Done", "")

	cmd := toast.Update(ToastDismissMsg{ID: 1})

	if toast.IsVisible() {
		t.Error("expected toast to be hidden after ToastDismissMsg")
	}
	if toast.Header() != "" {
		t.Error("expected header to be cleared after dismiss")
	}
	if cmd != nil {
		t.Error("expected no command after dismiss")
	}
}

// A dismissal scheduled for an older toast must not hide a newer one.
func TestToast_StaleDismissIgnored(t *testing.T) {
	toast := NewToast()
	toast.Show(ToastSuccess, "first", "")
	toast.Show(ToastSuccess, "second", "")

	toast.Update(ToastDismissMsg{ID: 1})
	if !toast.IsVisible() || toast.Header() != "second" {
		t.Errorf("expected 'second' to stay visible, got visible=%v header=%q", toast.IsVisible(), toast.Header())
	}

	toast.Update(ToastDismissMsg{ID: 2})
	if toast.IsVisible() {
		t.Error("expected toast to be hidden")
	}
}

func TestToast_ViewHandlesNarrowWidth(t *testing.T) {
	toast := NewToast()
	toast.Show(ToastSuccess, "very long header that might exceed narrow width", "")

	if view := toast.View(10); view == "" {
		t.Error("expected view even with narrow width")
	}
}

func TestToast_UpdateIgnoresOtherMessages(t *testing.T) {
	toast := NewToast()
	toast.Show(ToastSuccess, "test", "")

	cmd := toast.Update(tea.KeyPressMsg{})

	if !toast.IsVisible() {
		t.Error("expected toast to remain visible after unrelated message")
	}
	if cmd != nil {
		t.Error("expected no command for unrelated message")
	}
}
