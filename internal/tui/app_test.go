package tui

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/heimdall/internal/model"
)

func TestApp_KeysNavigateInOrder(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a.Update(startMsg{page: model.PageDashboard})

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.PageUserBehavior, a.currentPage())

	a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, model.PageMonitoring, a.currentPage())
	assert.True(t, a.monitoring)

	a.Update(keyMsg("5"))
	assert.Equal(t, model.PageProducts, a.currentPage())
}

func TestApp_RecordBehaviorTargetsBehaviorPageUser(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)

	a.navigate(model.PageUserBehavior)
	a.navigate(model.PageRecommendations)
	a.Update(keyMsg("."))
	a.navigate(model.PageUserBehavior)
	require.Equal(t, "user_001", a.board.Text(elBehaviorUser))

	a.Update(keyMsg("b"))
	m, ok := a.TopModal().(*BehaviorModal)
	require.True(t, ok)
	assert.Equal(t, a.board.Text(elBehaviorUser), m.userID)
}

func TestApp_RecordBehaviorOpensFromAnyPage(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)

	a.navigate(model.PageUserBehavior)
	a.Update(keyMsg("."))
	a.navigate(model.PageProducts)

	a.Update(keyMsg("b"))
	m, ok := a.TopModal().(*BehaviorModal)
	require.True(t, ok)
	assert.Equal(t, "user_002", m.userID)
}

func TestApp_MonitorTimerStopsAwayFromPage(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)

	a.navigate(model.PageMonitoring)
	require.True(t, a.monitoring)

	a.navigate(model.PageDashboard)
	_, cmd := a.Update(monitorTickMsg(testNow))
	assert.Nil(t, cmd)
	assert.False(t, a.monitoring)
}

func TestApp_StatusCheck(t *testing.T) {
	t.Parallel()
	a := newTestAppAt(t, unreachableURL(t), nil)

	msg, ok := a.checkStatus()().(statusMsg)
	require.True(t, ok)
	a.Update(msg)

	assert.Equal(t, "offline", a.board.Text(elSystemStatus))
	assert.Equal(t, "09:30:00", a.board.Text(elLastChecked))
	assert.True(t, a.statusKnown)
	assert.False(t, a.online)
}

func TestApp_ExportWritesLoadedPages(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)

	load(t, a, a.nav.NavigateToPage(model.PageProducts))
	msg, ok := a.exportCmd()().(exportDoneMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	data, err := os.ReadFile(msg.path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "session-test", doc["session_id"])
	assert.Equal(t, string(model.PageProducts), doc["current_page"])
	assert.Contains(t, doc["pages"], string(model.PageProducts))
	assert.NotContains(t, doc["pages"], string(model.PageDashboard))
}

func TestApp_ViewRendersEveryPage(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)
	a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})

	for _, p := range model.AllPages() {
		load(t, a, a.nav.NavigateToPage(p))
		out := a.View()
		assert.Contains(t, out, p.Title(), "page %s", p)
	}

	a.Update(keyMsg("?"))
	assert.Contains(t, a.View(), "NAVIGATION")
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, a.HasModal())
}
