package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tinytelemetry/heimdall/internal/model"
)

const flashDuration = 5 * time.Second

type statusTickMsg time.Time

type monitorTickMsg time.Time

// statusMsg is the result of a health check.
type statusMsg struct {
	online bool
	err    error
	at     time.Time
}

func (a *App) statusTick() tea.Cmd {
	return tea.Tick(a.deps.StatusInterval, func(t time.Time) tea.Msg { return statusTickMsg(t) })
}

func (a *App) monitorTick() tea.Cmd {
	return tea.Tick(a.deps.MonitorInterval, func(t time.Time) tea.Msg { return monitorTickMsg(t) })
}

// checkStatus pings /health off the UI loop.
func (a *App) checkStatus() tea.Cmd {
	client := a.deps.Client
	ctx := a.ctx
	now := a.deps.Now
	return func() tea.Msg {
		res := client.Health(ctx)
		return statusMsg{online: res.OK() && res.Value.Healthy(), err: res.Err, at: now()}
	}
}

func (a *App) applyStatus(msg statusMsg) {
	a.statusKnown = true
	a.online = msg.online
	if msg.online {
		a.board.SetText(elSystemStatus, "online")
		a.board.SetClass(elSystemStatus, classOnline)
	} else {
		a.board.SetText(elSystemStatus, "offline")
		a.board.SetClass(elSystemStatus, classOffline)
		a.deps.Logger.Info("health check failed", zap.Error(msg.err))
	}
	a.board.SetText(elLastChecked, msg.at.Format("15:04:05"))
}

// handleMonitorTick refreshes the monitoring page while it is shown. The
// timer stops once the user navigates away and restarts on return.
func (a *App) handleMonitorTick() tea.Cmd {
	if !a.store.IsActive(model.PageMonitoring) {
		a.monitoring = false
		return nil
	}
	return tea.Batch(a.nav.Refresh(model.PageMonitoring), a.monitorTick(), a.startSpinnerIfNeeded())
}
