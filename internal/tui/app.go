package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/chart"
	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

// App is the top-level Bubble Tea model. It owns the board, the chart
// registry and the view-state store, and routes messages to the navigator
// and the page controllers.
type App struct {
	deps   *Deps
	keys   KeyMap
	board  *board.Board
	charts *chart.Registry
	store  *viewstate.Store
	nav    *Navigator
	order  []PageController

	intent   *intentPage
	behavior *behaviorPage

	ctx    context.Context
	cancel context.CancelFunc

	modals []Modal

	width  int
	height int

	online      bool
	statusKnown bool

	monitoring bool
	spinning   bool

	flash   string
	flashAt time.Time
}

// NewApp mounts the board and wires every page controller.
func NewApp(deps *Deps) *App {
	return newApp(deps, chart.NewNTRenderer())
}

func newApp(deps *Deps, renderer chart.Renderer) *App {
	deps = deps.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	b := board.New()
	mountChrome(b)
	charts := chart.NewRegistry(b, renderer, deps.Logger)
	store := viewstate.New()
	keys := DefaultKeyMap()

	intent := newIntentPage(deps, b, charts)
	behavior := newBehaviorPage(deps, b, charts, keys)
	order := []PageController{
		newDashboardPage(deps, b, charts),
		behavior,
		newRecommendationsPage(deps, b, charts, keys),
		intent,
		newProductsPage(deps, b, charts),
		newAnalyticsPage(deps, b, charts, keys),
		newMonitoringPage(deps, b, charts),
	}
	for _, p := range order {
		p.Mount(b)
	}

	return &App{
		deps:     deps,
		keys:     keys,
		board:    b,
		charts:   charts,
		store:    store,
		nav:      NewNavigator(ctx, store, b, charts, deps.Logger, order...),
		order:    order,
		intent:   intent,
		behavior: behavior,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.nav.Start(a.deps.DefaultPage),
		a.checkStatus(),
		a.statusTick(),
	)
}

// Close cancels every outstanding load.
func (a *App) Close() {
	a.cancel()
	if err := a.charts.DestroyAll(); err != nil {
		a.deps.Logger.Debug("chart teardown on close", zap.Error(err))
	}
}

// setFlash shows a transient message in the status line.
func (a *App) setFlash(text string) {
	a.flash = text
	a.flashAt = a.deps.Now()
}

func (a *App) flashText() string {
	if a.flash == "" || a.deps.Now().Sub(a.flashAt) > flashDuration {
		return ""
	}
	return a.flash
}
