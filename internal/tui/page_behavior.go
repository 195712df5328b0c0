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
	chartBehaviorActions    = "behaviorActions"
	chartBehaviorCategories = "behaviorCategories"
)

type behaviorPage struct {
	pageBase
	keys    KeyMap
	userIdx int
	last    *model.UserProfile
}

func newBehaviorPage(deps *Deps, b *board.Board, charts *chart.Registry, keys KeyMap) *behaviorPage {
	p := &behaviorPage{pageBase: newPageBase(model.PageUserBehavior, deps, b, charts), keys: keys}
	for i, u := range model.DemoUsers {
		if u == deps.UserID {
			p.userIdx = i
		}
	}
	return p
}

func (p *behaviorPage) user() string { return model.DemoUsers[p.userIdx] }

func (p *behaviorPage) Mount(b *board.Board) {
	addElements(b, elBehaviorUser, elBehaviorCount, elBehaviorTimeline)
	b.AddCanvas(cvBehaviorActions)
	b.AddCanvas(cvBehaviorCategories)
}

func (p *behaviorPage) HandleKey(msg tea.KeyMsg) (bool, bool) {
	switch {
	case key.Matches(msg, p.keys.NextUser):
		p.userIdx = cycle(p.userIdx, 1, len(model.DemoUsers))
	case key.Matches(msg, p.keys.PrevUser):
		p.userIdx = cycle(p.userIdx, -1, len(model.DemoUsers))
	default:
		return false, false
	}
	p.set(elBehaviorUser, p.user())
	return true, true
}

func (p *behaviorPage) Loader(ctx context.Context) func() (any, error) {
	client := p.deps.Client
	user := p.user()
	p.set(elBehaviorUser, user)
	return func() (any, error) {
		profile, err := client.UserProfile(ctx, user).Unwrap()
		if err != nil {
			return nil, err
		}
		return &profile, nil
	}
}

func (p *behaviorPage) Apply(data any) viewstate.Outcome {
	profile, ok := data.(*model.UserProfile)
	if !ok {
		return p.Fail(fmt.Errorf("user behavior: unexpected payload %T", data))
	}
	p.loaded = true
	p.last = profile
	p.clearError()

	count := profile.BehaviorCount
	if count == 0 {
		count = int64(len(profile.RecentBehaviors))
	}
	p.set(elBehaviorCount, formatCount(count))

	actions := map[string]int{}
	categories := map[string]int{}
	for _, b := range profile.RecentBehaviors {
		actions[b.Kind()]++
		if b.Category != "" {
			categories[b.Category]++
		}
	}

	actionPoints := make([]chart.Point, 0, len(model.BehaviorTypes))
	for _, kind := range model.BehaviorTypes {
		actionPoints = append(actionPoints, chart.Point{Label: model.ActionLabel(kind), Value: float64(actions[kind])})
	}
	p.drawChart(chartBehaviorActions, cvBehaviorActions, chart.Config{Kind: chart.KindBar, Title: "Actions", Points: actionPoints, Color: ColorBlue})

	catNames := make([]string, 0, len(categories))
	for c := range categories {
		catNames = append(catNames, c)
	}
	sort.Slice(catNames, func(i, j int) bool {
		if categories[catNames[i]] != categories[catNames[j]] {
			return categories[catNames[i]] > categories[catNames[j]]
		}
		return catNames[i] < catNames[j]
	})
	catPoints := make([]chart.Point, 0, len(catNames))
	for _, c := range catNames {
		catPoints = append(catPoints, chart.Point{Label: c, Value: float64(categories[c])})
	}
	p.drawChart(chartBehaviorCategories, cvBehaviorCategories, chart.Config{Kind: chart.KindHorizontalBar, Title: "Categories", Points: catPoints, Color: ColorPurple})

	limit := min(len(profile.RecentBehaviors), model.RecentBehaviorLimit)
	rows := make([][]string, 0, limit)
	for _, b := range profile.RecentBehaviors[:limit] {
		rows = append(rows, []string{shortTime(b.Timestamp), model.ActionLabel(b.Kind()), b.Category, b.ProductName})
	}
	if len(rows) == 0 {
		rows = [][]string{{"No recorded behavior"}}
	}
	p.setRows(elBehaviorTimeline, rows)
	return viewstate.OutcomeSuccess
}

func (p *behaviorPage) Fail(err error) viewstate.Outcome {
	p.loaded = true
	p.last = nil
	p.showError(err)
	p.charts.Destroy(chartBehaviorActions)
	p.charts.Destroy(chartBehaviorCategories)
	p.set(elBehaviorCount, "-")
	p.setRows(elBehaviorTimeline, nil)
	return viewstate.OutcomeFailure
}

func (p *behaviorPage) ExportData() any {
	if p.last == nil {
		return nil
	}
	return p.last
}

func (p *behaviorPage) View(width, height int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		deckTitleStyle.Render("User "+p.board.Text(elBehaviorUser)), "  ",
		helpStyle.Render("behaviors: "+p.board.Text(elBehaviorCount)), "  ",
		helpStyle.Render(",/.: switch user"),
	)
	half := max(24, width/2-1)
	chartH := max(4, min(8, height/3))
	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		renderBox("Actions", p.chartView(chartBehaviorActions, half-4, chartH), half),
		renderBox("Categories", p.chartView(chartBehaviorCategories, half-4, chartH), half),
	)
	timeline := renderBox("Recent behavior",
		renderTable([]string{"Time", "Action", "Category", "Product"}, p.board.Rows(elBehaviorTimeline), width-4, model.RecentBehaviorLimit), width)
	return lipgloss.JoinVertical(lipgloss.Left, header, charts, timeline)
}
