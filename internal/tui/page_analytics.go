package tui

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/chart"
	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

const (
	chartIntentDistribution = "intentDistribution"
	chartStrategyConversion = "strategyConversion"
)

type analyticsPage struct {
	pageBase
	keys      KeyMap
	periodIdx int
	last      *model.AnalyticsSummary
}

func newAnalyticsPage(deps *Deps, b *board.Board, charts *chart.Registry, keys KeyMap) *analyticsPage {
	p := &analyticsPage{pageBase: newPageBase(model.PageAnalytics, deps, b, charts), keys: keys}
	for i, d := range model.AnalyticsPeriods {
		if d == model.DefaultAnalyticsDays {
			p.periodIdx = i
		}
	}
	return p
}

func (p *analyticsPage) days() int { return model.AnalyticsPeriods[p.periodIdx] }

func (p *analyticsPage) Mount(b *board.Board) {
	addElements(b, elAnalyticsPeriod, elImpressions, elClicks, elCTR, elConversions, elConversionRate, elRevenue)
	b.AddCanvas(cvIntentDistribution)
	b.AddCanvas(cvStrategyConversion)
}

func (p *analyticsPage) HandleKey(msg tea.KeyMsg) (bool, bool) {
	if !key.Matches(msg, p.keys.Period) {
		return false, false
	}
	p.periodIdx = cycle(p.periodIdx, 1, len(model.AnalyticsPeriods))
	return true, true
}

func (p *analyticsPage) Loader(ctx context.Context) func() (any, error) {
	client := p.deps.Client
	days := p.days()
	p.set(elAnalyticsPeriod, fmt.Sprintf("last %d days", days))
	return func() (any, error) {
		ov, err := client.AnalyticsOverview(ctx, days).Unwrap()
		if err != nil {
			return nil, err
		}
		s := ov.Overview
		if s.PeriodDays == 0 {
			s.PeriodDays = days
		}
		return &s, nil
	}
}

func (p *analyticsPage) Apply(data any) viewstate.Outcome {
	s, ok := data.(*model.AnalyticsSummary)
	if !ok {
		return p.Fail(fmt.Errorf("analytics: unexpected payload %T", data))
	}
	p.loaded = true
	p.last = s
	p.clearError()

	p.set(elImpressions, formatCount(s.TotalImpressions))
	p.set(elClicks, formatCount(s.TotalClicks))
	p.set(elCTR, formatPercent(s.ClickThroughRate))
	p.set(elConversions, formatCount(s.Conversions))
	p.set(elConversionRate, formatPercent(s.ConversionRate))
	p.set(elRevenue, formatPrice(s.Revenue))

	intents := make([]string, 0, len(s.IntentDistribution))
	for k := range s.IntentDistribution {
		intents = append(intents, k)
	}
	sort.Strings(intents)
	points := make([]chart.Point, 0, len(intents))
	for _, k := range intents {
		points = append(points, chart.Point{Label: k, Value: float64(s.IntentDistribution[k])})
	}
	p.drawChart(chartIntentDistribution, cvIntentDistribution, chart.Config{Kind: chart.KindBar, Title: "Intent distribution", Points: points, Color: ColorPurple})

	// Strategies in their usual order first, then anything else the
	// backend reports.
	conv := make([]chart.Point, 0, len(s.ConversionByStrategy))
	seen := make(map[string]bool, len(s.ConversionByStrategy))
	for _, name := range model.Strategies {
		if v, ok := s.ConversionByStrategy[name]; ok {
			conv = append(conv, chart.Point{Label: name, Value: v})
			seen[name] = true
		}
	}
	var extra []string
	for name := range s.ConversionByStrategy {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		conv = append(conv, chart.Point{Label: name, Value: s.ConversionByStrategy[name]})
	}
	p.drawChart(chartStrategyConversion, cvStrategyConversion, chart.Config{Kind: chart.KindHorizontalBar, Title: "Conversion by strategy", Points: conv, Color: ColorGreen})
	return viewstate.OutcomeSuccess
}

func (p *analyticsPage) Fail(err error) viewstate.Outcome {
	p.loaded = true
	p.charts.Destroy(chartIntentDistribution)
	p.charts.Destroy(chartStrategyConversion)
	p.showError(err)
	return viewstate.OutcomeFailure
}

func (p *analyticsPage) ExportData() any {
	if p.last == nil {
		return nil
	}
	return p.last
}

func (p *analyticsPage) View(width, height int) string {
	b := p.board
	cardW := max(14, (width-8)/3)
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		deckTitleStyle.Render("Advertising, "+b.Text(elAnalyticsPeriod)), "  ",
		helpStyle.Render("d: change period"),
	)
	row1 := renderCards(cardW,
		card{"Impressions", b.Text(elImpressions), ""},
		card{"Clicks", b.Text(elClicks), ""},
		card{"CTR", b.Text(elCTR), ""},
	)
	row2 := renderCards(cardW,
		card{"Conversions", b.Text(elConversions), ""},
		card{"Conversion rate", b.Text(elConversionRate), ""},
		card{"Revenue", b.Text(elRevenue), classSuccess},
	)
	chartH := max(4, min(12, height-lipgloss.Height(row1)*2-6))
	half := max(20, width/2-1)
	dist := renderBox("Intent distribution", p.chartView(chartIntentDistribution, half-4, chartH), half)
	conv := renderBox("Conversion by strategy", p.chartView(chartStrategyConversion, half-4, chartH), half)
	return lipgloss.JoinVertical(lipgloss.Left, header, row1, row2, lipgloss.JoinHorizontal(lipgloss.Top, dist, conv))
}
