package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/chart"
	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

// startMsg is delivered once the board is mounted.
type startMsg struct {
	page model.PageID
}

// Navigator moves between pages. All methods run on the UI loop; the
// commands they return do the blocking work.
type Navigator struct {
	ctx    context.Context
	store  *viewstate.Store
	board  *board.Board
	charts *chart.Registry
	pages  map[model.PageID]PageController
	logger *zap.Logger
}

// NewNavigator wires a navigator over the given page controllers.
func NewNavigator(ctx context.Context, store *viewstate.Store, b *board.Board, charts *chart.Registry, logger *zap.Logger, pages ...PageController) *Navigator {
	m := make(map[model.PageID]PageController, len(pages))
	for _, p := range pages {
		m[p.ID()] = p
	}
	return &Navigator{
		ctx:    ctx,
		store:  store,
		board:  b,
		charts: charts,
		pages:  m,
		logger: logger,
	}
}

// Start waits for the board to be mounted, then asks for the first page.
func (n *Navigator) Start(page model.PageID) tea.Cmd {
	ready := n.board.Ready()
	ctx := n.ctx
	return func() tea.Msg {
		select {
		case <-ready:
			return startMsg{page: page}
		case <-ctx.Done():
			return nil
		}
	}
}

// NavigateToPage shows target and starts its initializer. Navigating to
// the page already shown does nothing.
func (n *Navigator) NavigateToPage(target model.PageID) tea.Cmd {
	if cur, ok := n.store.Current(); ok && cur == target {
		return nil
	}
	prev, _ := n.store.Current()

	n.board.HideAll()
	if err := n.board.Show(string(target)); err != nil {
		n.logger.Warn("navigate: no section", zap.String("page", string(target)), zap.Error(err))
	}
	if err := n.board.SetActiveNav(string(target)); err != nil {
		n.logger.Warn("navigate: no nav item", zap.String("page", string(target)), zap.Error(err))
	}
	if err := n.charts.DestroyAll(); err != nil {
		n.logger.Warn("navigate: chart teardown", zap.Error(err))
	}
	n.store.SetCurrent(target)

	n.logger.Debug("navigate", zap.String("from", string(prev)), zap.String("to", string(target)))
	return n.InitPageSpecific(target)
}

// InitPageSpecific starts the load of page. Pages without a controller
// have nothing to initialise.
func (n *Navigator) InitPageSpecific(page model.PageID) tea.Cmd {
	ctrl, ok := n.pages[page]
	if !ok {
		return nil
	}
	return n.load(ctrl, n.store.Begin(page))
}

// Refresh reloads page if it is active and not already loading.
func (n *Navigator) Refresh(page model.PageID) tea.Cmd {
	ctrl, ok := n.pages[page]
	if !ok || !n.store.IsActive(page) {
		return nil
	}
	task, ok := n.store.TryBegin(page)
	if !ok {
		n.logger.Debug("refresh skipped, load in flight", zap.String("page", string(page)))
		return nil
	}
	return n.load(ctrl, task)
}

// Reload starts a new load of the active page, superseding one in flight.
func (n *Navigator) Reload(page model.PageID) tea.Cmd {
	ctrl, ok := n.pages[page]
	if !ok || !n.store.IsActive(page) {
		return nil
	}
	return n.load(ctrl, n.store.Begin(page))
}

func (n *Navigator) load(ctrl PageController, task viewstate.Task) tea.Cmd {
	fetch := ctrl.Loader(n.ctx)
	return func() tea.Msg {
		data, err := fetch()
		return pageDataMsg{task: task, data: data, err: err}
	}
}

// HandleData applies a finished load if its task is still current.
func (n *Navigator) HandleData(msg pageDataMsg) {
	if !n.store.IsCurrent(msg.task) {
		n.store.Finish(msg.task, viewstate.OutcomeStale, nil)
		n.logger.Debug("dropping stale page data",
			zap.String("page", string(msg.task.Page)),
			zap.Uint64("generation", msg.task.Generation))
		return
	}

	ctrl := n.pages[msg.task.Page]
	var outcome viewstate.Outcome
	if msg.err != nil {
		outcome = ctrl.Fail(msg.err)
	} else {
		outcome = ctrl.Apply(msg.data)
	}
	n.store.Finish(msg.task, outcome, msg.err)

	if msg.err != nil {
		n.logger.Info("page load failed",
			zap.String("page", string(msg.task.Page)),
			zap.Stringer("outcome", outcome),
			zap.Error(msg.err))
	}
}

// Page returns the controller for id.
func (n *Navigator) Page(id model.PageID) (PageController, bool) {
	p, ok := n.pages[id]
	return p, ok
}
