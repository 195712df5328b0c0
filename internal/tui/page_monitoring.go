package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/heimdall/internal/apiclient"
	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/chart"
	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

const (
	chartCPUHistory = "cpuHistory"
	cpuHistoryLen   = 30
)

type monitoringData struct {
	Metrics   model.MonitoringMetrics `json:"metrics"`
	Simulated bool                    `json:"simulated"`
	Err       error                   `json:"-"`
}

type monitoringPage struct {
	pageBase
	history []float64
	last    *monitoringData
}

func newMonitoringPage(deps *Deps, b *board.Board, charts *chart.Registry) *monitoringPage {
	return &monitoringPage{pageBase: newPageBase(model.PageMonitoring, deps, b, charts)}
}

func (p *monitoringPage) Mount(b *board.Board) {
	addElements(b, elCPU, elMemory, elDisk, elNetwork,
		elTotalRequests, elErrorRate, elAvgResponse, elActiveUsers,
		elDBConnections, elQueryTime, elCacheHit, elMonitorSource)
	b.AddCanvas(cvCPUHistory)
}

// Loader falls back to simulated values when the backend has no metrics
// endpoint or cannot be reached.
func (p *monitoringPage) Loader(ctx context.Context) func() (any, error) {
	client := p.deps.Client
	return func() (any, error) {
		res := client.MonitoringMetrics(ctx)
		if res.OK() {
			return &monitoringData{Metrics: res.Value}, nil
		}
		if res.Kind == apiclient.KindNetworkError && ctx.Err() != nil {
			return nil, res.Err
		}
		return &monitoringData{Metrics: model.SimulatedMonitoring(), Simulated: true, Err: res.Err}, nil
	}
}

func (p *monitoringPage) Apply(data any) viewstate.Outcome {
	d, ok := data.(*monitoringData)
	if !ok {
		return p.Fail(fmt.Errorf("monitoring: unexpected payload %T", data))
	}
	p.loaded = true
	p.last = d

	sys := d.Metrics.System
	for _, m := range []struct {
		id string
		v  float64
	}{
		{elCPU, sys.CPU}, {elMemory, sys.Memory}, {elDisk, sys.Disk}, {elNetwork, sys.Network},
	} {
		p.setClassed(m.id, formatPercent(m.v), thresholdClass(m.v))
	}

	api := d.Metrics.API
	p.set(elTotalRequests, formatCount(api.TotalRequests))
	p.set(elErrorRate, formatPercent(api.ErrorRate))
	p.set(elAvgResponse, strconv.FormatFloat(api.AvgResponseTime, 'f', 0, 64)+"ms")
	p.set(elActiveUsers, formatCount(api.ActiveUsers))

	db := d.Metrics.Database
	p.set(elDBConnections, formatCount(db.Connections))
	p.set(elQueryTime, strconv.FormatFloat(db.QueryTime, 'f', 0, 64)+"ms")
	p.set(elCacheHit, formatPercent(db.CacheHitRate))

	p.history = append(p.history, sys.CPU)
	if len(p.history) > cpuHistoryLen {
		p.history = p.history[len(p.history)-cpuHistoryLen:]
	}
	points := make([]chart.Point, len(p.history))
	for i, v := range p.history {
		points[i] = chart.Point{Value: v}
	}
	p.drawChart(chartCPUHistory, cvCPUHistory, chart.Config{Kind: chart.KindSparkline, Title: "CPU", Points: points, Color: ColorGreen})

	if d.Simulated {
		p.setClassed(elMonitorSource, "simulated", classFallback)
		p.showNotice(describeError(d.Err) + ". Showing simulated metrics.")
		return viewstate.OutcomeFallback
	}
	p.setClassed(elMonitorSource, "live", classSuccess)
	p.clearError()
	return viewstate.OutcomeSuccess
}

func (p *monitoringPage) Fail(err error) viewstate.Outcome {
	p.loaded = true
	p.showError(err)
	return viewstate.OutcomeFailure
}

func (p *monitoringPage) ExportData() any {
	if p.last == nil {
		return nil
	}
	return p.last
}

func (p *monitoringPage) View(width, height int) string {
	b := p.board
	cardW := max(14, (width-8)/4)
	classed := func(label, id string) card { return card{label, b.Text(id), b.Class(id)} }

	system := renderCards(cardW,
		classed("CPU", elCPU), classed("Memory", elMemory),
		classed("Disk", elDisk), classed("Network", elNetwork),
	)
	api := renderCards(cardW,
		card{"Requests", b.Text(elTotalRequests), ""},
		card{"Error rate", b.Text(elErrorRate), ""},
		card{"Avg response", b.Text(elAvgResponse), ""},
		card{"Active users", b.Text(elActiveUsers), ""},
	)
	db := renderCards(cardW,
		card{"DB connections", b.Text(elDBConnections), ""},
		card{"Query time", b.Text(elQueryTime), ""},
		card{"Cache hit rate", b.Text(elCacheHit), ""},
		classed("Source", elMonitorSource),
	)
	chartH := max(3, min(8, height-lipgloss.Height(system)*3-4))
	cpu := renderBox("CPU history", p.chartView(chartCPUHistory, width-6, chartH), width)
	return lipgloss.JoinVertical(lipgloss.Left, system, api, db, cpu)
}
