// Package wizard implements the three-step "attach from catalog" flow:
// search the shared catalog, configure variants, review and submit.
package wizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/attachr/internal/draft"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/tui/theme"
)

// Model is the wizard controller. It owns the session through a
// draft.Controller, loads reference data on open and routes messages to the
// active step. It is embedded in a host model and is not a tea.Model itself.
type Model struct {
	deps Deps
	ctrl *draft.Controller

	loading bool  // reference data in flight
	refErr  error // reference data failed to load
	spinner spinner.Model

	search    *SearchStep
	configure *ConfigureStep
	review    *ReviewStep

	width  int
	height int
}

// New creates a closed wizard.
func New(deps Deps) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	return &Model{
		deps:    deps.withDefaults(),
		ctrl:    draft.NewController(nil),
		spinner: s,
		width:   80,
		height:  24,
	}
}

// IsOpen reports whether the wizard is showing.
func (m *Model) IsOpen() bool {
	return m.ctrl.IsOpen()
}

// Step returns the active step.
func (m *Model) Step() draft.Step {
	return m.ctrl.Step()
}

// Session returns the current session snapshot.
func (m *Model) Session() draft.Session {
	return m.ctrl.Session()
}

// Loading reports whether the reference data is still loading.
func (m *Model) Loading() bool {
	return m.loading
}

// Open starts a new session and loads regions and stock locations. Opening
// an open wizard does nothing.
func (m *Model) Open() tea.Cmd {
	if m.ctrl.IsOpen() {
		return nil
	}
	m.ctrl.Open(nil, nil)
	m.search, m.configure, m.review = nil, nil, nil
	return m.loadReference()
}

func (m *Model) loadReference() tea.Cmd {
	m.loading = true
	m.refErr = nil

	gen, deps := m.ctrl.Generation(), m.deps
	fetch := func() tea.Msg {
		ctx, cancel := deps.context()
		defer cancel()
		regions, err := deps.Reference.Regions(ctx)
		if err != nil {
			return referenceLoadedMsg{gen: gen, err: err}
		}
		locations, err := deps.Reference.StockLocations(ctx)
		if err != nil {
			return referenceLoadedMsg{gen: gen, err: err}
		}
		return referenceLoadedMsg{gen: gen, regions: regions, locations: locations}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

// Close resets the session and tells the host.
func (m *Model) Close() tea.Cmd {
	return m.close(false)
}

func (m *Model) close(attached bool) tea.Cmd {
	if !m.ctrl.IsOpen() {
		return nil
	}
	m.ctrl.Close()
	m.loading = false
	m.refErr = nil
	m.search, m.configure, m.review = nil, nil, nil
	return func() tea.Msg {
		return ClosedMsg{Attached: attached}
	}
}

func (m *Model) goBack() tea.Cmd {
	if m.review != nil && m.review.Submitting() {
		return nil
	}
	m.ctrl.GoBack()
	m.updateCurrentStepSize()
	return nil
}

// Update handles messages for the wizard. Messages are ignored while closed.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.ctrl.IsOpen() {
		return nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return nil

	case referenceLoadedMsg:
		if !m.ctrl.Current(msg.gen) {
			return nil
		}
		m.loading = false
		if msg.err != nil {
			logger.Warn("loading regions and stock locations failed: %v", msg.err)
			m.refErr = msg.err
			return nil
		}
		m.ctrl.SetReference(msg.gen, msg.regions, msg.locations)
		m.search = NewSearchStep(m.deps, m.ctrl.Generation())
		m.updateCurrentStepSize()
		return m.search.Init()

	case ProductSelectedMsg:
		gen, ok := m.ctrl.SelectProduct(msg.Product)
		if !ok {
			return nil
		}
		m.configure = NewConfigureStep(m.ctrl, m.deps, gen)
		m.review = nil
		m.updateCurrentStepSize()
		return m.configure.Init()

	case VariantsConfirmedMsg:
		m.ctrl.ConfirmVariants(msg.Selection)
		m.review = NewReviewStep(m.ctrl, m.deps)
		m.updateCurrentStepSize()
		return m.review.Init()

	case BackMsg:
		return m.goBack()

	case attachDoneMsg:
		if !m.ctrl.Current(msg.gen) {
			return nil
		}
		if m.review != nil {
			m.review.finish()
		}
		if msg.err != nil {
			return notify(NotifyError, "Attach failed", failureMessage(msg.err))
		}
		if m.deps.OnSuccess != nil {
			m.deps.OnSuccess()
		}
		return tea.Batch(
			notify(NotifySuccess, "Products attached",
				fmt.Sprintf("Attached %s of %s to your catalog", pluralVariants(msg.variants), msg.title)),
			m.close(true),
		)

	case searchResultMsg, searchDebounceMsg:
		if m.search != nil {
			return m.search.Update(msg)
		}
		return nil

	case detailLoadedMsg:
		if m.configure != nil {
			return m.configure.Update(msg)
		}
		return nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.search != nil {
			cmds = append(cmds, m.search.Update(msg))
		}
		if m.configure != nil {
			cmds = append(cmds, m.configure.Update(msg))
		}
		return tea.Batch(cmds...)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			switch {
			case m.loading || m.refErr != nil:
				return m.Close()
			case m.ctrl.Step() == draft.StepConfigure && m.configure != nil && m.configure.Editing():
				return m.configure.Update(msg)
			case m.ctrl.Step() == draft.StepSearch:
				return m.Close()
			default:
				return m.goBack()
			}
		case "r":
			if m.refErr != nil {
				return m.loadReference()
			}
		}
	}

	switch m.ctrl.Step() {
	case draft.StepSearch:
		if m.search != nil {
			return m.search.Update(msg)
		}
	case draft.StepConfigure:
		if m.configure != nil {
			return m.configure.Update(msg)
		}
	case draft.StepReview:
		if m.review != nil {
			return m.review.Update(msg)
		}
	}
	return nil
}

func notify(kind NotifyKind, header, description string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Kind: kind, Header: header, Description: description}
	}
}

// SetSize updates the wizard's terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateCurrentStepSize()
}

func (m *Model) modalWidth() int {
	w := m.width - 10
	if w < 60 {
		w = 60
	}
	if w > 110 {
		w = 110
	}
	return w
}

// updateCurrentStepSize updates the size of the current step component.
func (m *Model) updateCurrentStepSize() {
	// Reserve space for modal container (padding, borders, title)
	contentWidth := m.modalWidth() - 6
	contentHeight := m.height - 10
	if contentHeight < 10 {
		contentHeight = 10
	}

	switch m.ctrl.Step() {
	case draft.StepSearch:
		if m.search != nil {
			m.search.SetSize(contentWidth, contentHeight)
		}
	case draft.StepConfigure:
		if m.configure != nil {
			m.configure.SetSize(contentWidth, contentHeight)
		}
	case draft.StepReview:
		if m.review != nil {
			m.review.SetSize(contentWidth, contentHeight)
		}
	}
}

// View renders the wizard modal centered in the terminal, or "" when closed.
func (m *Model) View() string {
	if !m.ctrl.IsOpen() {
		return ""
	}

	st := styles()
	var content string
	switch {
	case m.loading:
		content = m.spinner.View() + " Loading regions and stock locations...\n\n" +
			renderHintBar("esc", "close")
	case m.refErr != nil:
		content = st.Error.Render("Error: "+failureMessage(m.refErr)) + "\n\n" +
			renderHintBar("r", "retry", "esc", "close")
	default:
		content = m.stepView()
	}

	step := m.ctrl.Step()
	title := fmt.Sprintf("Attach from catalog · Step %d of 3: %s", int(step)+1, step)

	sections := []string{st.ModalTitle.Render(title), "", content}
	modal := st.ModalContainer.Width(m.modalWidth()).Render(strings.Join(sections, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m *Model) stepView() string {
	switch m.ctrl.Step() {
	case draft.StepSearch:
		if m.search != nil {
			return m.search.View()
		}
	case draft.StepConfigure:
		if m.configure != nil {
			return m.configure.View()
		}
	case draft.StepReview:
		if m.review != nil {
			return m.review.View()
		}
	}
	return ""
}
