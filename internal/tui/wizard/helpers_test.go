package wizard

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/attachr/internal/draft"
	"github.com/mark3labs/attachr/internal/tui/testfixtures"
	"github.com/stretchr/testify/require"
)

type harness struct {
	m           *Model
	gateway     *testfixtures.MockGateway
	reference   *testfixtures.MockReference
	invalidator *testfixtures.MockInvalidator
	journal     *testfixtures.MockRecorder
	successes   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		gateway:     testfixtures.NewMockGateway(),
		reference:   testfixtures.NewMockReference(testfixtures.Regions(), testfixtures.Locations()),
		invalidator: &testfixtures.MockInvalidator{},
		journal:     &testfixtures.MockRecorder{},
	}
	h.m = New(Deps{
		Gateway:        h.gateway,
		Reference:      h.reference,
		Invalidator:    h.invalidator,
		Journal:        h.journal,
		RequestTimeout: time.Second,
		OnSuccess:      func() { h.successes++ },
	})
	h.m.SetSize(testfixtures.TestTermWidth, testfixtures.TestTermHeight)
	return h
}

// open opens the wizard and delivers reference data and the first search page.
func (h *harness) open(t *testing.T) {
	t.Helper()
	cmd := h.m.Open()
	ref, ok := testfixtures.FindMsg[referenceLoadedMsg](t, cmd)
	require.True(t, ok, "reference data should load")
	cmd = h.m.Update(ref)
	res, ok := testfixtures.FindMsg[searchResultMsg](t, cmd)
	require.True(t, ok, "initial search should run")
	h.m.Update(res)
	require.False(t, h.m.search.Loading())
}

// selectTee picks the first (published) row and delivers the variant detail.
func (h *harness) selectTee(t *testing.T) {
	t.Helper()
	cmd := h.m.Update(testfixtures.Key(tea.KeyEnter))
	sel, ok := testfixtures.FindMsg[ProductSelectedMsg](t, cmd)
	require.True(t, ok)
	cmd = h.m.Update(sel)
	require.Equal(t, draft.StepConfigure, h.m.Step())
	detail, ok := testfixtures.FindMsg[detailLoadedMsg](t, cmd)
	require.True(t, ok)
	h.m.Update(detail)
	require.True(t, h.m.Session().VariantsLoaded)
}

// send feeds msgs to the wizard and returns the last command.
func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		cmd = h.m.Update(msg)
	}
	return cmd
}

func (h *harness) typeText(s string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range testfixtures.Type(s) {
		cmd = h.m.Update(k)
	}
	return cmd
}

// configureSmall selects the first variant and gives it a US price.
func (h *harness) configureSmall(t *testing.T, amount string) {
	t.Helper()
	h.send(testfixtures.Key(tea.KeyEnter)) // select + edit "Small"
	require.True(t, h.m.configure.Editing())
	h.send(
		testfixtures.Key(tea.KeyDown),
		testfixtures.Key(tea.KeyDown),
		testfixtures.Key(tea.KeyDown), // price United States
		testfixtures.Key(tea.KeyBackspace),
	)
	h.typeText(amount)
	h.send(testfixtures.Key(tea.KeyEscape))
	require.False(t, h.m.configure.Editing())
}

// confirm moves focus to Next and presses it.
func (h *harness) confirm(t *testing.T) {
	t.Helper()
	cmd := h.send(testfixtures.Key(tea.KeyTab), testfixtures.Key(tea.KeyTab), testfixtures.Key(tea.KeyEnter))
	msg, ok := testfixtures.FindMsg[VariantsConfirmedMsg](t, cmd)
	require.True(t, ok, "Next should be enabled")
	h.m.Update(msg)
	require.Equal(t, draft.StepReview, h.m.Step())
}
