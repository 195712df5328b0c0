package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tinytelemetry/heimdall/internal/model"
)

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.board.MarkReady()
		return a, nil

	case startMsg:
		return a, a.navigate(msg.page)

	case pageDataMsg:
		a.nav.HandleData(msg)
		return a, nil

	case SpinnerTickMsg:
		return a, a.handleSpinnerTick()

	case statusTickMsg:
		return a, tea.Batch(a.checkStatus(), a.statusTick())

	case statusMsg:
		a.applyStatus(msg)
		return a, nil

	case monitorTickMsg:
		return a, a.handleMonitorTick()

	case intentQueryMsg:
		if err := a.intent.SetQuery(msg.query); err != nil {
			a.setFlash(describeError(err))
			return a, nil
		}
		return a, a.reload(model.PageIntentAnalysis)

	case productCreatedMsg:
		return a, a.handleProductCreated(msg)

	case behaviorRecordedMsg:
		return a, a.handleBehaviorRecorded(msg)

	case exportDoneMsg:
		if msg.err != nil {
			a.deps.Logger.Warn("export failed", zap.Error(msg.err))
			a.setFlash("Export failed: " + msg.err.Error())
		} else {
			a.setFlash("Exported to " + msg.path)
		}
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.MouseMsg:
		if modal := a.TopModal(); modal != nil {
			pop, cmd := modal.Update(msg)
			if pop {
				a.PopModal()
			}
			return a, cmd
		}
	}
	return a, nil
}

// navigate switches pages and starts the timers the target page needs.
func (a *App) navigate(page model.PageID) tea.Cmd {
	cmds := []tea.Cmd{a.nav.NavigateToPage(page)}
	if page == model.PageMonitoring && !a.monitoring {
		a.monitoring = true
		cmds = append(cmds, a.monitorTick())
	}
	cmds = append(cmds, a.startSpinnerIfNeeded())
	return tea.Batch(cmds...)
}

func (a *App) reload(page model.PageID) tea.Cmd {
	return tea.Batch(a.nav.Reload(page), a.startSpinnerIfNeeded())
}

func (a *App) currentPage() model.PageID {
	cur, _ := a.store.Current()
	return cur
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.ForceQuit) {
		a.Close()
		return tea.Quit
	}

	if modal := a.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			a.PopModal()
		}
		return cmd
	}

	cur := a.currentPage()
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.Close()
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.PushModal(NewHelpModal(a.keys))
		return nil

	case key.Matches(msg, a.keys.NextPage):
		return a.navigate(a.stepPage(cur, 1))

	case key.Matches(msg, a.keys.PrevPage):
		return a.navigate(a.stepPage(cur, -1))

	case key.Matches(msg, a.keys.GoTo):
		n, err := strconv.Atoi(msg.String())
		if err != nil || n < 1 || n > len(a.order) {
			return nil
		}
		return a.navigate(a.order[n-1].ID())

	case key.Matches(msg, a.keys.Retry):
		cmd := a.nav.Refresh(cur)
		if cmd == nil {
			a.setFlash("Already loading")
			return nil
		}
		return tea.Batch(cmd, a.startSpinnerIfNeeded())

	case key.Matches(msg, a.keys.Dismiss):
		if ctrl, ok := a.nav.Page(cur); ok {
			if base := basePage(ctrl); base != nil {
				base.clearError()
			}
		}
		return nil

	case key.Matches(msg, a.keys.Export):
		return a.exportCmd()

	case key.Matches(msg, a.keys.RecordBehavior):
		// Behaviors are recorded for the user selected on the behavior page.
		a.PushModal(NewBehaviorModal(a.behavior.user(), a.deps.SessionID, a.recordBehavior))
		return nil

	case key.Matches(msg, a.keys.Inspect):
		if ctrl, ok := a.nav.Page(cur); ok {
			var data any
			if ex, ok := ctrl.(Exporter); ok {
				data = ex.ExportData()
			}
			a.PushModal(NewRawDataModal(cur.Title()+" data", data))
		}
		return nil
	}

	switch cur {
	case model.PageIntentAnalysis:
		if key.Matches(msg, a.keys.Query) {
			a.PushModal(NewIntentQueryModal(a.intent.query))
			return nil
		}
	case model.PageProducts:
		if key.Matches(msg, a.keys.AddProduct) {
			a.PushModal(NewProductModal(a.createProduct))
			return nil
		}
	}

	if ctrl, ok := a.nav.Page(cur); ok {
		if kh, ok := ctrl.(KeyHandler); ok {
			if handled, reload := kh.HandleKey(msg); handled && reload {
				return a.reload(cur)
			}
		}
	}
	return nil
}

// stepPage returns the page delta positions from cur in navigation order.
func (a *App) stepPage(cur model.PageID, delta int) model.PageID {
	idx := 0
	for i, p := range a.order {
		if p.ID() == cur {
			idx = i
		}
	}
	return a.order[cycle(idx, delta, len(a.order))].ID()
}

func (a *App) createProduct(p model.NewProduct) tea.Cmd {
	client := a.deps.Client
	ctx := a.ctx
	return func() tea.Msg {
		return productCreatedMsg{name: p.Name, result: client.CreateProduct(ctx, p)}
	}
}

func (a *App) handleProductCreated(msg productCreatedMsg) tea.Cmd {
	created, err := msg.result.Unwrap()
	switch {
	case err != nil:
		a.setFlash("Add product failed: " + describeError(err))
		return nil
	case !created.Success:
		a.setFlash("Add product rejected: " + created.Message)
		return nil
	}
	a.deps.Logger.Info("product created", zap.String("name", msg.name), zap.String("product_id", created.ProductID))
	a.setFlash(fmt.Sprintf("Added %q", msg.name))
	return a.reload(model.PageProducts)
}

func (a *App) recordBehavior(rec model.BehaviorRecord) tea.Cmd {
	client := a.deps.Client
	ctx := a.ctx
	return func() tea.Msg {
		return behaviorRecordedMsg{record: rec, result: client.RecordBehavior(ctx, rec)}
	}
}

func (a *App) handleBehaviorRecorded(msg behaviorRecordedMsg) tea.Cmd {
	ack, err := msg.result.Unwrap()
	if err != nil {
		a.setFlash("Record behavior failed: " + describeError(err))
		return nil
	}
	if !ack.Success {
		a.setFlash("Record behavior rejected: " + ack.Message)
		return nil
	}
	a.setFlash(fmt.Sprintf("Recorded %s for %s", msg.record.BehaviorType, msg.record.UserID))
	return a.reload(model.PageUserBehavior)
}

// basePage exposes the shared helpers of a built-in controller.
func basePage(ctrl PageController) *pageBase {
	if b, ok := ctrl.(interface{ base() *pageBase }); ok {
		return b.base()
	}
	return nil
}
