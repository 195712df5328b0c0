package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/chart"
	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

// PageController owns one page: what it loads, how results land on the
// board, and how the page is drawn.
type PageController interface {
	ID() model.PageID
	// Mount registers the page's elements and canvases.
	Mount(b *board.Board)
	// Loader captures the page parameters on the UI loop and returns the
	// blocking fetch to run off it.
	Loader(ctx context.Context) func() (any, error)
	// Apply renders a successful load.
	Apply(data any) viewstate.Outcome
	// Fail renders a failed load.
	Fail(err error) viewstate.Outcome
	HasData() bool
	View(width, height int) string
}

// KeyHandler is implemented by pages with page-local keys. reload reports
// that the page parameters changed and the page should load again.
type KeyHandler interface {
	HandleKey(msg tea.KeyMsg) (handled, reload bool)
}

// Exporter is implemented by pages whose data can be exported.
type Exporter interface {
	ExportData() any
}

// pageDataMsg carries a finished load back to the UI loop.
type pageDataMsg struct {
	task viewstate.Task
	data any
	err  error
}

// pageBase holds what every controller needs and the board helpers they
// share. Missing targets are logged and skipped.
type pageBase struct {
	id     model.PageID
	deps   *Deps
	board  *board.Board
	charts *chart.Registry
	loaded bool
}

func newPageBase(id model.PageID, deps *Deps, b *board.Board, charts *chart.Registry) pageBase {
	return pageBase{id: id, deps: deps, board: b, charts: charts}
}

func (p *pageBase) ID() model.PageID { return p.id }
func (p *pageBase) HasData() bool    { return p.loaded }

func (p *pageBase) warnMissing(err error) {
	var missing *board.TargetMissingError
	if errors.As(err, &missing) {
		p.deps.Logger.Warn("render target missing",
			zap.String("page", string(p.id)),
			zap.String("kind", missing.Kind),
			zap.String("id", missing.ID))
		return
	}
	p.deps.Logger.Warn("render failed", zap.String("page", string(p.id)), zap.Error(err))
}

func (p *pageBase) set(id, text string) {
	if err := p.board.SetText(id, text); err != nil {
		p.warnMissing(err)
	}
}

func (p *pageBase) setClassed(id, text, class string) {
	p.set(id, text)
	if err := p.board.SetClass(id, class); err != nil {
		p.warnMissing(err)
	}
}

func (p *pageBase) setRows(id string, rows [][]string) {
	if err := p.board.SetRows(id, rows); err != nil {
		p.warnMissing(err)
	}
}

// drawChart replaces the chart under name. Failures leave the page
// rendering without the chart.
func (p *pageBase) drawChart(name, canvasID string, cfg chart.Config) {
	if _, err := p.charts.Create(name, canvasID, cfg); err != nil {
		p.deps.Logger.Warn("chart skipped", zap.String("page", string(p.id)), zap.String("chart", name), zap.Error(err))
	}
}

func (p *pageBase) showError(err error) {
	p.setClassed(errorPanelID(p.id), describeError(err), classError)
}

func (p *pageBase) showNotice(text string) {
	p.setClassed(errorPanelID(p.id), text, classWarning)
}

func (p *pageBase) clearError() {
	if p.board.Text(errorPanelID(p.id)) == "" {
		return
	}
	p.setClassed(errorPanelID(p.id), "", "")
}

func (p *pageBase) chartView(name string, width, height int) string {
	h, ok := p.charts.Get(name)
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, helpStyle.Render("chart unavailable"))
	}
	return h.View(width, height)
}

func (p *pageBase) base() *pageBase { return p }
