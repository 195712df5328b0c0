package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/chart"
	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

const chartRecScores = "recommendationScores"

type recommendationsData struct {
	UserID          string                 `json:"user_id"`
	Strategy        string                 `json:"strategy"`
	Recommendations []model.Recommendation `json:"recommendations"`
	Sample          bool                   `json:"sample"`
}

type recommendationsPage struct {
	pageBase
	keys        KeyMap
	userIdx     int
	strategyIdx int
	last        *recommendationsData
}

func newRecommendationsPage(deps *Deps, b *board.Board, charts *chart.Registry, keys KeyMap) *recommendationsPage {
	p := &recommendationsPage{pageBase: newPageBase(model.PageRecommendations, deps, b, charts), keys: keys}
	for i, u := range model.DemoUsers {
		if u == deps.UserID {
			p.userIdx = i
		}
	}
	return p
}

func (p *recommendationsPage) user() string     { return model.DemoUsers[p.userIdx] }
func (p *recommendationsPage) strategy() string { return model.Strategies[p.strategyIdx] }

func (p *recommendationsPage) Mount(b *board.Board) {
	addElements(b, elRecUser, elRecStrategy, elRecList, elRecNotice)
	b.AddCanvas(cvRecScores)
}

func (p *recommendationsPage) HandleKey(msg tea.KeyMsg) (bool, bool) {
	switch {
	case key.Matches(msg, p.keys.NextUser):
		p.userIdx = cycle(p.userIdx, 1, len(model.DemoUsers))
	case key.Matches(msg, p.keys.PrevUser):
		p.userIdx = cycle(p.userIdx, -1, len(model.DemoUsers))
	case key.Matches(msg, p.keys.Strategy):
		p.strategyIdx = cycle(p.strategyIdx, 1, len(model.Strategies))
	default:
		return false, false
	}
	return true, true
}

func (p *recommendationsPage) Loader(ctx context.Context) func() (any, error) {
	client := p.deps.Client
	req := model.RecommendationRequest{
		UserID:    p.user(),
		SessionID: p.deps.SessionID,
		Limit:     model.RecommendationLimit,
		Strategy:  p.strategy(),
	}
	p.set(elRecUser, req.UserID)
	p.set(elRecStrategy, req.Strategy)
	return func() (any, error) {
		list, err := client.Recommendations(ctx, req).Unwrap()
		if err != nil {
			return nil, err
		}
		return &recommendationsData{UserID: req.UserID, Strategy: req.Strategy, Recommendations: list.Recommendations}, nil
	}
}

func (p *recommendationsPage) Apply(data any) viewstate.Outcome {
	d, ok := data.(*recommendationsData)
	if !ok {
		return p.Fail(fmt.Errorf("recommendations: unexpected payload %T", data))
	}
	p.loaded = true
	p.last = d
	if !d.Sample {
		p.clearError()
		p.set(elRecNotice, "")
	}

	rows := make([][]string, 0, len(d.Recommendations))
	points := make([]chart.Point, 0, len(d.Recommendations))
	for _, r := range d.Recommendations {
		rows = append(rows, []string{r.Name, formatPrice(r.Price), formatRating(r.Rating), r.RecommendationReason})
		score := r.FinalScore
		if score == 0 {
			score = r.Rating
		}
		points = append(points, chart.Point{Label: r.Name, Value: score})
	}
	if len(rows) == 0 {
		rows = [][]string{{"No recommendations for this user"}}
	}
	p.setRows(elRecList, rows)
	p.drawChart(chartRecScores, cvRecScores, chart.Config{Kind: chart.KindHorizontalBar, Title: "Scores", Points: points, Color: ColorGreen})

	if d.Sample {
		return viewstate.OutcomeFallback
	}
	return viewstate.OutcomeSuccess
}

// Fail falls back to the built-in sample recommendations.
func (p *recommendationsPage) Fail(err error) viewstate.Outcome {
	p.showNotice(describeError(err) + ". Showing sample recommendations.")
	p.set(elRecNotice, "sample data")
	return p.Apply(&recommendationsData{
		UserID:          p.user(),
		Strategy:        p.strategy(),
		Recommendations: model.SampleRecommendations(),
		Sample:          true,
	})
}

func (p *recommendationsPage) ExportData() any {
	if p.last == nil {
		return nil
	}
	return p.last
}

func (p *recommendationsPage) View(width, height int) string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		deckTitleStyle.Render("For "+p.board.Text(elRecUser)), "  ",
		helpStyle.Render("strategy: "+p.board.Text(elRecStrategy)), "  ",
		lipgloss.NewStyle().Foreground(ColorOrange).Render(p.board.Text(elRecNotice)), "  ",
		helpStyle.Render(",/.: user  s: strategy"),
	)
	list := renderBox("Recommended", renderTable([]string{"Product", "Price", "Rating", "Why"}, p.board.Rows(elRecList), width-4, model.RecommendationLimit), width)
	chartH := max(4, min(model.RecommendationLimit, height-lipgloss.Height(list)-4))
	scores := renderBox("Scores", p.chartView(chartRecScores, width-6, chartH), width)
	return lipgloss.JoinVertical(lipgloss.Left, header, list, scores)
}
