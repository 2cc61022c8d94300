package wizard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/tui/theme"
)

// SearchStep lists catalog products page by page and lets the seller pick a
// published one.
type SearchStep struct {
	deps Deps
	gen  uint64 // session generation the step belongs to

	input   textinput.Model
	spinner spinner.Model

	query   string // debounced query
	page    int
	tag     int // debounce tag, bumped on every keystroke
	seq     int // request sequence, bumped on every search
	loading bool
	err     error
	result  catalog.SearchResult
	cursor  int

	width  int
	height int
}

// NewSearchStep creates the search step for the session generation gen.
func NewSearchStep(deps Deps, gen uint64) *SearchStep {
	input := textinput.New()
	input.Placeholder = "Search catalog products..."
	input.Prompt = "Search: "
	input.SetStyles(inputStyles())
	input.SetWidth(50)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	return &SearchStep{
		deps:    deps.withDefaults(),
		gen:     gen,
		input:   input,
		spinner: s,
		width:   60,
		height:  20,
	}
}

func inputStyles() textinput.Styles {
	t := theme.Current()
	return textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
}

// Init focuses the search box and loads the first, unfiltered page.
func (s *SearchStep) Init() tea.Cmd {
	return tea.Batch(s.input.Focus(), s.search())
}

// SetSize updates the dimensions for the search step.
func (s *SearchStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.input.SetWidth(width - 10)
}

func (s *SearchStep) pageInfo() catalog.Page {
	return catalog.Page{
		Offset: s.page * SearchPageSize,
		Limit:  SearchPageSize,
		Count:  s.result.Count,
	}
}

// search issues a request for the current query and page.
func (s *SearchStep) search() tea.Cmd {
	s.seq++
	s.loading = true
	s.err = nil

	gen, seq := s.gen, s.seq
	q := catalog.SearchQuery{
		Query:  s.query,
		Limit:  SearchPageSize,
		Offset: s.page * SearchPageSize,
	}
	deps := s.deps
	fetch := func() tea.Msg {
		ctx, cancel := deps.context()
		defer cancel()
		res, err := deps.Gateway.SearchProducts(ctx, q)
		return searchResultMsg{gen: gen, seq: seq, result: res, err: err}
	}
	return tea.Batch(fetch, s.spinner.Tick)
}

// Update handles messages for the search step.
func (s *SearchStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case searchResultMsg:
		if msg.gen != s.gen || msg.seq != s.seq {
			logger.Debug("dropping stale search response (seq %d, current %d)", msg.seq, s.seq)
			return nil
		}
		s.loading = false
		if msg.err != nil {
			logger.Warn("catalog search failed: %v", msg.err)
			s.err = msg.err
			return nil
		}
		s.result = msg.result
		if s.cursor >= len(s.result.Products) {
			s.cursor = 0
		}
		return nil

	case searchDebounceMsg:
		if msg.gen != s.gen || msg.tag != s.tag {
			return nil
		}
		query := strings.TrimSpace(s.input.Value())
		if query == s.query {
			return nil
		}
		s.query = query
		s.page = 0
		s.cursor = 0
		return s.search()

	case spinner.TickMsg:
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up":
			if s.cursor > 0 {
				s.cursor--
			}
			return nil
		case "down":
			if s.cursor < len(s.result.Products)-1 {
				s.cursor++
			}
			return nil
		case "enter":
			return s.selectCurrent()
		case "pgdown", "ctrl+n":
			return s.NextPage()
		case "pgup", "ctrl+p":
			return s.PrevPage()
		}
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() == before {
		return cmd
	}

	s.tag++
	gen, tag := s.gen, s.tag
	return tea.Batch(cmd, tea.Tick(s.deps.Debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{gen: gen, tag: tag}
	}))
}

// NextPage moves forward one page when one exists.
func (s *SearchStep) NextPage() tea.Cmd {
	if !s.pageInfo().HasNext() {
		return nil
	}
	s.page++
	s.cursor = 0
	return s.search()
}

// PrevPage moves back one page unless already on the first.
func (s *SearchStep) PrevPage() tea.Cmd {
	if !s.pageInfo().HasPrev() {
		return nil
	}
	s.page--
	s.cursor = 0
	return s.search()
}

// selectCurrent picks the product under the cursor. Rows that are not
// attachable are ignored.
func (s *SearchStep) selectCurrent() tea.Cmd {
	if s.loading || s.err != nil || s.cursor >= len(s.result.Products) {
		return nil
	}
	p := s.result.Products[s.cursor]
	if !p.Status.IsAttachable() {
		return nil
	}
	return func() tea.Msg {
		return ProductSelectedMsg{Product: p}
	}
}

// Query returns the debounced query.
func (s *SearchStep) Query() string { return s.query }

// Page returns the zero-based page index.
func (s *SearchStep) Page() int { return s.page }

// Loading reports whether a search is in flight.
func (s *SearchStep) Loading() bool { return s.loading }

// View renders the search step.
func (s *SearchStep) View() string {
	st := styles()
	var b strings.Builder

	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(s.spinner.View())
		b.WriteString(" Searching catalog...\n")
	case s.err != nil:
		b.WriteString(st.Error.Render("Error: " + failureMessage(s.err)))
		b.WriteString("\n")
		b.WriteString(st.Muted.Render("Change the search or page to try again."))
		b.WriteString("\n")
	case len(s.result.Products) == 0:
		b.WriteString(st.Muted.Render("No products found"))
		b.WriteString("\n")
	default:
		b.WriteString(s.renderTable())
	}

	b.WriteString("\n")
	b.WriteString(s.renderFooter())
	b.WriteString("\n\n")
	b.WriteString(renderHintBar(
		"type", "search",
		"↑↓", "navigate",
		"enter", "select",
		"pgup/pgdn", "page",
		"esc", "close",
	))
	return b.String()
}

func (s *SearchStep) columns() (title, collection, variants, status int) {
	variants, status = 9, 11
	rest := s.width - variants - status - 6
	if rest < 20 {
		rest = 20
	}
	collection = rest / 3
	title = rest - collection
	return title, collection, variants, status
}

func (s *SearchStep) renderTable() string {
	st := styles()
	wTitle, wColl, wVar, wStatus := s.columns()

	var b strings.Builder
	header := "  " + cell("Title", wTitle) + " " + cell("Collection", wColl) + " " +
		cell("Variants", wVar) + " " + cell("Status", wStatus)
	b.WriteString(st.TableHeader.Render(header))
	b.WriteString("\n")

	for i, p := range s.result.Products {
		collection := p.Collection()
		if collection == "" {
			collection = "-"
		}
		row := cell(p.Title, wTitle) + " " + cell(collection, wColl) + " " +
			cell(strconv.Itoa(p.VariantsCount), wVar) + " "

		marker := "  "
		if i == s.cursor {
			marker = "> "
		}
		switch {
		case !p.Status.IsAttachable():
			row = st.RowDisabled.Render(marker + row)
		case i == s.cursor:
			row = st.RowCursor.Render(marker + row)
		default:
			row = marker + row
		}
		b.WriteString(row + statusBadge(p.Status) + "\n")
	}
	return b.String()
}

func (s *SearchStep) renderFooter() string {
	st := styles()
	p := s.pageInfo()
	from, to := p.Range()
	info := fmt.Sprintf("Showing %d-%d of %d", from, to, p.Count)
	total := p.Total()
	if total == 0 {
		total = 1
	}
	pages := fmt.Sprintf("Page %d of %d", p.Index()+1, total)

	bar := NewButtonBar([]Button{
		{Label: "← Prev", State: buttonState(p.HasPrev(), false)},
		{Label: "Next →", State: buttonState(p.HasNext(), false)},
	})
	bar.SetWidth(s.width)
	return st.Muted.Render(info+" · "+pages) + "\n" + bar.Render()
}
