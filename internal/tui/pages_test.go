package tui

import (
	"context"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestDashboard_LiveData(t *testing.T) {
	t.Parallel()
	cache := newMemoryCache()
	a, _ := newDemoApp(t)
	a.deps.Cache = cache

	load(t, a, a.nav.NavigateToPage(model.PageDashboard))

	assert.Equal(t, "online", a.board.Text(elSystemStatus))
	assert.Equal(t, "10", a.board.Text(elTotalProducts))
	assert.Equal(t, viewstate.OutcomeSuccess, a.store.State(model.PageDashboard).Outcome)
	assert.Empty(t, a.board.Text(errorPanelID(model.PageDashboard)))
	assert.Equal(t, 1, cache.puts)
}

func TestDashboard_OfflineFallsBackToPlaceholders(t *testing.T) {
	t.Parallel()
	a := newTestAppAt(t, unreachableURL(t), nil)

	load(t, a, a.nav.NavigateToPage(model.PageDashboard))

	assert.Equal(t, "offline (fallback)", a.board.Text(elSystemStatus))
	assert.Equal(t, classOffline, a.board.Class(elSystemStatus))
	assert.Equal(t, "0", a.board.Text(elTotalProducts))
	assert.Equal(t, "0", a.board.Text(elTotalUsers))
	assert.Equal(t, "1,250", a.board.Text(elRecImpressions))
	assert.Equal(t, viewstate.OutcomeFallback, a.store.State(model.PageDashboard).Outcome)
	assert.Contains(t, a.board.Text(errorPanelID(model.PageDashboard)), "placeholder")
}

func TestDashboard_OfflineUsesCachedSnapshot(t *testing.T) {
	t.Parallel()
	cache := newMemoryCache()
	require.NoError(t, cache.PutJSON(t.Context(), cacheKeyDashboard, "test", model.DashboardStats{
		Overview: model.DashboardOverview{TotalProducts: 42, TotalUsers: 7},
	}))
	a := newTestAppAt(t, unreachableURL(t), cache)

	load(t, a, a.nav.NavigateToPage(model.PageDashboard))

	assert.Equal(t, "42", a.board.Text(elTotalProducts))
	assert.Equal(t, "offline (fallback)", a.board.Text(elSystemStatus))
	assert.Contains(t, a.board.Text(elDashboardSource), "cached snapshot")
	assert.Contains(t, a.board.Text(errorPanelID(model.PageDashboard)), "cached snapshot")
}

func TestDashboard_CanceledLoadReturnsError(t *testing.T) {
	t.Parallel()
	cache := newMemoryCache()
	a := newTestAppAt(t, unreachableURL(t), cache)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctrl, ok := a.nav.Page(model.PageDashboard)
	require.True(t, ok)

	data, err := ctrl.Loader(ctx)()
	assert.Nil(t, data)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, cache.puts)
}

func TestProducts_EmptyListRendersOneNoDataRow(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, jsonHandler(http.StatusOK, `{"products":[],"total":0}`))

	load(t, a, a.nav.NavigateToPage(model.PageProducts))

	assert.Equal(t, [][]string{{noProductsText}}, a.board.Rows(elProductsTable))
	assert.Equal(t, viewstate.OutcomeSuccess, a.store.State(model.PageProducts).Outcome)
}

func TestProducts_ServerErrorShowsPanel(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, jsonHandler(http.StatusInternalServerError, `{"detail":"database unavailable"}`))

	load(t, a, a.nav.NavigateToPage(model.PageProducts))

	assert.Equal(t, [][]string{{productsFailedText}}, a.board.Rows(elProductsTable))
	assert.Equal(t, "API returned 500: database unavailable", a.board.Text(errorPanelID(model.PageProducts)))
	assert.Equal(t, viewstate.OutcomeFailure, a.store.State(model.PageProducts).Outcome)
	assert.Equal(t, int64(1), a.deps.Client.Stats().Failure)
}

func TestProducts_DemoCatalogue(t *testing.T) {
	t.Parallel()
	a, s := newDemoApp(t)

	load(t, a, a.nav.NavigateToPage(model.PageProducts))

	assert.Len(t, a.board.Rows(elProductsTable), len(s.Catalog().Products()))
	assert.Equal(t, "10 products", a.board.Text(elProductsTotal))
}

func TestBehavior_UnknownUserShowsNotFound(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, jsonHandler(http.StatusNotFound, `{"detail":"user not found"}`))

	load(t, a, a.nav.NavigateToPage(model.PageUserBehavior))
	assert.Contains(t, a.board.Text(errorPanelID(model.PageUserBehavior)), "user not found")
	_, ok := a.charts.Get(chartBehaviorActions)
	assert.False(t, ok)
}

func TestBehavior_RendersProfileCharts(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)

	load(t, a, a.nav.NavigateToPage(model.PageUserBehavior))

	assert.Equal(t, viewstate.OutcomeSuccess, a.store.State(model.PageUserBehavior).Outcome)
	_, ok := a.charts.Get(chartBehaviorActions)
	assert.True(t, ok)
	assert.NotEmpty(t, a.board.Rows(elBehaviorTimeline))
}

func TestRecommendations_FailureShowsSamples(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, jsonHandler(http.StatusServiceUnavailable, `{"detail":"engine warming up"}`))

	load(t, a, a.nav.NavigateToPage(model.PageRecommendations))

	rows := a.board.Rows(elRecList)
	require.Len(t, rows, len(model.SampleRecommendations()))
	assert.Equal(t, model.SampleRecommendations()[0].Name, rows[0][0])
	assert.Equal(t, viewstate.OutcomeFallback, a.store.State(model.PageRecommendations).Outcome)
	assert.Contains(t, a.board.Text(errorPanelID(model.PageRecommendations)), "engine warming up")
}

func TestRecommendations_StrategyKeyReloads(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	load(t, a, a.nav.NavigateToPage(model.PageRecommendations))
	assert.Equal(t, model.Strategies[0], a.board.Text(elRecStrategy))

	_, cmd := a.Update(keyMsg("s"))
	require.NotNil(t, cmd)
	assert.Equal(t, model.Strategies[1], a.board.Text(elRecStrategy))
	assert.True(t, a.store.State(model.PageRecommendations).InFlight)
}

func TestIntent_EmptyQueryMakesNoRequest(t *testing.T) {
	t.Parallel()
	h := newCountingHandler(jsonHandler(http.StatusOK, `{}`))
	a := newTestApp(t, h)

	load(t, a, a.nav.NavigateToPage(model.PageIntentAnalysis))

	assert.Zero(t, h.count("/api/v1/hybrid-recommendations/recommendations"))
	assert.Equal(t, viewstate.OutcomeSuccess, a.store.State(model.PageIntentAnalysis).Outcome)
}

func TestIntent_QueryRendersAnalysis(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)

	load(t, a, a.nav.NavigateToPage(model.PageIntentAnalysis))
	require.NoError(t, a.intent.SetQuery("I want a good value laptop"))
	load(t, a, a.nav.Reload(model.PageIntentAnalysis))

	assert.Equal(t, viewstate.OutcomeSuccess, a.store.State(model.PageIntentAnalysis).Outcome)
	assert.Contains(t, a.board.Text(elIntentBadges), "intent:")
	assert.NotEmpty(t, a.board.Rows(elIntentRecs))
}

func TestAnalytics_PeriodKeyCycles(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)

	load(t, a, a.nav.NavigateToPage(model.PageAnalytics))
	assert.Equal(t, "last 7 days", a.board.Text(elAnalyticsPeriod))

	_, cmd := a.Update(keyMsg("d"))
	require.NotNil(t, cmd)
	assert.Equal(t, "last 30 days", a.board.Text(elAnalyticsPeriod))
}

func TestAnalytics_DrawsBothCharts(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)

	load(t, a, a.nav.NavigateToPage(model.PageAnalytics))

	assert.ElementsMatch(t, []string{chartIntentDistribution, chartStrategyConversion}, a.charts.Names())
	assert.Equal(t, viewstate.OutcomeSuccess, a.store.State(model.PageAnalytics).Outcome)
}

func TestAnalytics_FailureDropsBothCharts(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, jsonHandler(http.StatusInternalServerError, `{"detail":"boom"}`))

	load(t, a, a.nav.NavigateToPage(model.PageAnalytics))

	assert.Zero(t, a.charts.Len())
	assert.Equal(t, viewstate.OutcomeFailure, a.store.State(model.PageAnalytics).Outcome)
}

func TestMonitoring_MissingEndpointIsSimulated(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, jsonHandler(http.StatusNotFound, `{"detail":"not found"}`))

	load(t, a, a.nav.NavigateToPage(model.PageMonitoring))

	sim := model.SimulatedMonitoring()
	assert.Equal(t, formatPercent(sim.System.CPU), a.board.Text(elCPU))
	assert.Equal(t, classWarning, a.board.Class(elDisk))
	assert.Equal(t, "simulated", a.board.Text(elMonitorSource))
	assert.Equal(t, viewstate.OutcomeFallback, a.store.State(model.PageMonitoring).Outcome)
}

func TestMonitoring_HistoryIsCapped(t *testing.T) {
	t.Parallel()
	a, _ := newDemoApp(t)

	load(t, a, a.nav.NavigateToPage(model.PageMonitoring))
	for i := 0; i < cpuHistoryLen+5; i++ {
		load(t, a, a.nav.Refresh(model.PageMonitoring))
	}
	ctrl, _ := a.nav.Page(model.PageMonitoring)
	assert.Len(t, ctrl.(*monitoringPage).history, cpuHistoryLen)
	assert.Equal(t, 1, a.charts.Len())
}
