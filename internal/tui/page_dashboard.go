package tui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/heimdall/internal/apiclient"
	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/chart"
	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

const (
	cacheKeyDashboard = "dashboard-stats"
	chartCategory     = "category"

	sourceLive        = "live"
	sourceCache       = "cache"
	sourcePlaceholder = "placeholder"
)

type dashboardData struct {
	Online      bool                   `json:"online"`
	Stats       model.DashboardStats   `json:"stats"`
	RecStats    model.AnalyticsSummary `json:"recommendation_stats"`
	Source      string                 `json:"source"`
	CachedAt    time.Time              `json:"cached_at,omitempty"`
	RecFallback bool                   `json:"recommendation_stats_fallback"`
	StatsErr    error                  `json:"-"`
}

type dashboardPage struct {
	pageBase
	last *dashboardData
}

func newDashboardPage(deps *Deps, b *board.Board, charts *chart.Registry) *dashboardPage {
	return &dashboardPage{pageBase: newPageBase(model.PageDashboard, deps, b, charts)}
}

func (p *dashboardPage) Mount(b *board.Board) {
	addElements(b, elTotalProducts, elTotalUsers, elTotalBehaviors, elAvgRating,
		elRecImpressions, elRecCTR, elRecConversion,
		elPopularProducts, elRecentActivity, elDashboardSource)
	b.AddCanvas(cvCategory)
}

func (p *dashboardPage) Loader(ctx context.Context) func() (any, error) {
	client := p.deps.Client
	cache := p.deps.Cache
	logger := p.deps.Logger
	return func() (any, error) {
		var (
			health apiclient.Result[model.Health]
			stats  apiclient.Result[model.DashboardStats]
			ads    apiclient.Result[model.AnalyticsOverview]
			g      errgroup.Group
		)
		g.Go(func() error { health = client.Health(ctx); return nil })
		g.Go(func() error { stats = client.DashboardStats(ctx); return nil })
		g.Go(func() error { ads = client.AnalyticsOverview(ctx, model.DefaultAnalyticsDays); return nil })
		_ = g.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		d := &dashboardData{Online: health.OK() && health.Value.Healthy()}
		if stats.OK() {
			d.Stats = stats.Value
			d.Source = sourceLive
			if cache != nil {
				if err := cache.PutJSON(ctx, cacheKeyDashboard, client.BaseURL(), stats.Value); err != nil {
					logger.Warn("snapshot write failed", zap.Error(err))
				}
			}
		} else {
			d.StatsErr = stats.Err
			if cache != nil {
				var cached model.DashboardStats
				entry, ok, err := cache.GetJSON(ctx, cacheKeyDashboard, &cached)
				switch {
				case err != nil:
					logger.Warn("snapshot read failed", zap.Error(err))
				case ok:
					d.Stats = cached
					d.Source = sourceCache
					d.CachedAt = entry.SavedAt
				}
			}
			if d.Source == "" {
				d.Stats = model.PlaceholderDashboard()
				d.Source = sourcePlaceholder
			}
		}

		if ads.OK() {
			d.RecStats = ads.Value.Overview
		} else {
			d.RecStats = model.PlaceholderAnalytics()
			d.RecFallback = true
		}
		return d, nil
	}
}

func (p *dashboardPage) Apply(data any) viewstate.Outcome {
	d, ok := data.(*dashboardData)
	if !ok {
		return p.Fail(fmt.Errorf("dashboard: unexpected payload %T", data))
	}
	p.loaded = true
	p.last = d

	status, class := "offline", classOffline
	if d.Online {
		status, class = "online", classOnline
	}
	if d.Source != sourceLive {
		status += " (fallback)"
		class = classFallback
		if !d.Online {
			class = classOffline
		}
	}
	p.setClassed(elSystemStatus, status, class)
	p.set(elLastChecked, p.deps.Now().Format("15:04:05"))

	ov := d.Stats.Overview
	p.set(elTotalProducts, formatCount(ov.TotalProducts))
	p.set(elTotalUsers, formatCount(ov.TotalUsers))
	p.set(elTotalBehaviors, formatCount(ov.TotalBehaviors))
	p.set(elAvgRating, formatRating(d.Stats.AverageRating()))
	p.set(elRecImpressions, formatCount(d.RecStats.TotalImpressions))
	p.set(elRecCTR, formatPercent(d.RecStats.ClickThroughRate))
	p.set(elRecConversion, formatPercent(d.RecStats.ConversionRate))

	switch d.Source {
	case sourceLive:
		p.setClassed(elDashboardSource, "live data", classSuccess)
		p.clearError()
	case sourceCache:
		p.setClassed(elDashboardSource, "cached snapshot from "+d.CachedAt.Local().Format("2006-01-02 15:04"), classFallback)
		p.showNotice(describeError(d.StatsErr) + ". Showing the last cached snapshot.")
	default:
		p.setClassed(elDashboardSource, "placeholder data", classFallback)
		p.showNotice(describeError(d.StatsErr) + ". Showing placeholder data.")
	}

	cats := make([]string, 0, len(d.Stats.CategoryStats))
	for c := range d.Stats.CategoryStats {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	points := make([]chart.Point, 0, len(cats))
	for _, c := range cats {
		points = append(points, chart.Point{Label: c, Value: float64(d.Stats.CategoryStats[c].Total())})
	}
	p.drawChart(chartCategory, cvCategory, chart.Config{Kind: chart.KindBar, Title: "Category activity", Points: points, Color: ColorBlue})

	popular := make([][]string, 0, len(d.Stats.PopularProducts))
	for _, pr := range d.Stats.PopularProducts {
		popular = append(popular, []string{pr.Name, pr.Category, formatPrice(pr.Price), formatRating(pr.Rating), formatCount(pr.ViewCount)})
	}
	p.setRows(elPopularProducts, popular)

	recent := make([][]string, 0, len(d.Stats.RecentActivities))
	for _, a := range d.Stats.RecentActivities {
		recent = append(recent, []string{shortTime(a.Timestamp), a.UserID, model.ActionLabel(a.Kind()), a.ProductName})
	}
	p.setRows(elRecentActivity, recent)

	if d.Source == sourceLive {
		return viewstate.OutcomeSuccess
	}
	return viewstate.OutcomeFallback
}

// Fail renders placeholders. The loader only fails when its context is
// canceled.
func (p *dashboardPage) Fail(err error) viewstate.Outcome {
	p.Apply(&dashboardData{
		Stats:    model.PlaceholderDashboard(),
		RecStats: model.PlaceholderAnalytics(),
		Source:   sourcePlaceholder,
		StatsErr: err,
	})
	return viewstate.OutcomeFallback
}

func (p *dashboardPage) ExportData() any {
	if p.last == nil {
		return nil
	}
	return p.last
}

func (p *dashboardPage) View(width, height int) string {
	b := p.board
	cardW := max(14, (width-8)/4)
	row1 := renderCards(cardW,
		card{"Products", b.Text(elTotalProducts), ""},
		card{"Users", b.Text(elTotalUsers), ""},
		card{"Behaviors", b.Text(elTotalBehaviors), ""},
		card{"Avg rating", b.Text(elAvgRating), ""},
	)
	row2 := renderCards(cardW,
		card{"Rec. impressions", b.Text(elRecImpressions), ""},
		card{"Rec. CTR", b.Text(elRecCTR), ""},
		card{"Rec. conversion", b.Text(elRecConversion), ""},
		card{"Data", b.Text(elDashboardSource), b.Class(elDashboardSource)},
	)

	chartH := max(4, min(10, height-lipgloss.Height(row1)*2-16))
	chartBox := renderBox("Category activity", p.chartView(chartCategory, width-6, chartH), width)

	tableW := max(30, width/2-2)
	popular := renderBox("Popular products",
		renderTable([]string{"Name", "Category", "Price", "Rating", "Views"}, b.Rows(elPopularProducts), tableW-4, 5), tableW)
	recent := renderBox("Recent activity",
		renderTable([]string{"Time", "User", "Action", "Product"}, b.Rows(elRecentActivity), tableW-4, 5), tableW)

	return lipgloss.JoinVertical(lipgloss.Left,
		row1, row2, chartBox,
		lipgloss.JoinHorizontal(lipgloss.Top, popular, recent),
	)
}
