package testfixtures

import (
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// DefaultWaitDuration bounds how long command trees are run.
const DefaultWaitDuration = 2 * time.Second

// Key builds a key press for a special key, e.g. Key(tea.KeyEnter).
func Key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// ShiftTab builds a shift+tab key press.
func ShiftTab() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
}

// Space builds a space key press.
func Space() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
}

// Type returns one key press per rune of s.
func Type(s string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

// Collect runs cmd, expanding batches, and returns every message produced
// within wait. Commands still blocked after wait are abandoned.
func Collect(t *testing.T, cmd tea.Cmd, wait time.Duration) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	var (
		mu   sync.Mutex
		msgs []tea.Msg
		wg   sync.WaitGroup
	)
	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		defer wg.Done()
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				if sub != nil {
					wg.Add(1)
					go run(sub)
				}
			}
			return
		}
		if msg != nil {
			mu.Lock()
			msgs = append(msgs, msg)
			mu.Unlock()
		}
	}

	wg.Add(1)
	go run(cmd)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(wait):
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]tea.Msg(nil), msgs...)
}

// FindMsg runs cmd and returns the first message of type T.
func FindMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) (T, bool) {
	t.Helper()
	var zero T
	if cmd == nil {
		return zero, false
	}

	found := make(chan T, 1)
	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				if sub != nil {
					go run(sub)
				}
			}
			return
		}
		if m, ok := msg.(T); ok {
			select {
			case found <- m:
			default:
			}
		}
	}
	go run(cmd)

	select {
	case m := <-found:
		return m, true
	case <-time.After(DefaultWaitDuration):
		return zero, false
	}
}

// Plain strips ANSI sequences from rendered output.
func Plain(s string) string {
	return ansi.Strip(s)
}
