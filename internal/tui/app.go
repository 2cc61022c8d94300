package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/attachr/internal/logger"
	"github.com/mark3labs/attachr/internal/tui/theme"
	"github.com/mark3labs/attachr/internal/tui/wizard"
)

// Options configures the App.
type Options struct {
	// Wizard holds the collaborators of the attach wizard.
	Wizard wizard.Deps
	// Products serves the seller's own product list.
	Products ProductSource
	// Flag and CatalogOverride decide whether the attach entry point is available.
	Flag            FeatureFlag
	CatalogOverride string
	PageSize        int
	RequestTimeout  time.Duration
	// OpenWizard opens the wizard as soon as the feature flag resolves enabled.
	OpenWizard bool
}

// featureResolvedMsg reports the outcome of the catalog feature check.
type featureResolvedMsg struct {
	enabled bool
	err     error
}

// App is the main Bubbletea model: the seller's product list with the
// attach wizard as an overlay.
type App struct {
	ctx  context.Context
	opts Options

	wizard   *Wizard
	products *ProductList
	toast    *Toast

	featureKnown   bool
	catalogEnabled bool

	width    int
	height   int
	quitting bool
}

// Wizard is the attach wizard hosted by the App.
type Wizard = wizard.Model

// NewApp creates the TUI application.
func NewApp(ctx context.Context, opts Options) *App {
	return &App{
		ctx:      ctx,
		opts:     opts,
		wizard:   wizard.New(opts.Wizard),
		products: NewProductList(ctx, opts.Products, opts.PageSize, opts.RequestTimeout),
		toast:    NewToast(),
	}
}

// Init resolves the feature flag and loads the first product page.
// In Bubbletea v2, Init returns only tea.Cmd (not Model).
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.resolveFeature(), a.products.Load())
}

func (a *App) resolveFeature() tea.Cmd {
	ctx, override, flag := a.ctx, a.opts.CatalogOverride, a.opts.Flag
	timeout := a.opts.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		enabled, err := ResolveCatalogFeature(ctx, override, flag)
		return featureResolvedMsg{enabled: enabled, err: err}
	}
}

// CatalogEnabled reports whether the attach entry point is available.
func (a *App) CatalogEnabled() bool {
	return a.featureKnown && a.catalogEnabled
}

// WizardModel returns the hosted wizard.
func (a *App) WizardModel() *Wizard {
	return a.wizard
}

// ToastModel returns the toast component.
func (a *App) ToastModel() *Toast {
	return a.toast
}

// Products returns the product list component.
func (a *App) Products() *ProductList {
	return a.products
}

// Update handles incoming messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.wizard.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyPressMsg:
		return a, a.handleKeyPress(msg)

	case featureResolvedMsg:
		a.featureKnown = true
		a.catalogEnabled = msg.enabled
		if msg.err != nil {
			logger.Warn("catalog feature check failed: %v", msg.err)
			return a, a.toast.Show(ToastError, "Global catalog unavailable", msg.err.Error())
		}
		logger.Debug("global catalog enabled: %v", msg.enabled)
		if msg.enabled && a.opts.OpenWizard {
			return a, a.wizard.Open()
		}
		return a, nil

	case productsLoadedMsg:
		return a, a.products.Update(msg)

	case ToastDismissMsg:
		return a, a.toast.Update(msg)

	case wizard.NotifyMsg:
		kind := ToastSuccess
		if msg.Kind == wizard.NotifyError {
			kind = ToastError
		}
		return a, a.toast.Show(kind, msg.Header, msg.Description)

	case wizard.ClosedMsg:
		if msg.Attached {
			return a, a.products.Load()
		}
		return a, nil
	}

	// Everything else belongs to the wizard (async results, spinner ticks).
	return a, a.wizard.Update(msg)
}

// handleKeyPress routes keys: ctrl+c always quits, the open wizard captures
// everything else, otherwise the home screen handles them.
func (a *App) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit
	}
	if a.wizard.IsOpen() {
		return a.wizard.Update(msg)
	}

	switch msg.String() {
	case "q":
		a.quitting = true
		return tea.Quit
	case "a":
		return a.openWizard()
	case "r":
		return a.products.Load()
	}
	return a.products.Update(msg)
}

// openWizard is the attach entry point. It only opens when the global
// catalog feature is enabled.
func (a *App) openWizard() tea.Cmd {
	if !a.featureKnown {
		return nil
	}
	if !a.catalogEnabled {
		return a.toast.Show(ToastError, "Global catalog disabled",
			"Enable the global product catalog for your store to attach products.")
	}
	return a.wizard.Open()
}

// View renders the current view. In Bubbletea v2, this returns tea.View
// with display options like AltScreen.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.quitting || a.width <= 0 || a.height <= 0 {
		view.AltScreen = !a.quitting
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	a.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = lipgloss.Color(theme.Current().BgBase)
	return view
}

// Draw renders all components to the screen buffer.
func (a *App) Draw(scr uv.Screen, area uv.Rectangle) {
	s := theme.Current().S()

	main := DrawHeader(scr, area, "attachr · Your products", s.HeaderTitle, s.Subtle)
	if main.Dy() > 2 {
		listArea := uv.Rect(main.Min.X+1, main.Min.Y+1, main.Dx()-2, main.Dy()-2)
		DrawText(scr, listArea, a.products.View(listArea.Dx()))
		DrawText(scr, uv.Rect(main.Min.X+1, main.Max.Y-1, main.Dx()-2, 1), HintHome(a.CatalogEnabled()))
	}

	if a.wizard.IsOpen() {
		DrawText(scr, area, a.wizard.View())
	}

	// Toast last so it appears on top of everything
	if toast := a.toast.View(area.Dx()); toast != "" {
		DrawBottomRight(scr, area, toast)
	}
}
