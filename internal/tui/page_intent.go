package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/heimdall/internal/board"
	"github.com/tinytelemetry/heimdall/internal/chart"
	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/viewstate"
)

const (
	chartIntentPreferences = "intentPreferences"
	maxQueryLength         = 500
)

type intentPage struct {
	pageBase
	query string
	last  *model.HybridResponse
}

func newIntentPage(deps *Deps, b *board.Board, charts *chart.Registry) *intentPage {
	return &intentPage{pageBase: newPageBase(model.PageIntentAnalysis, deps, b, charts)}
}

func (p *intentPage) Mount(b *board.Board) {
	addElements(b, elIntentQuery, elIntentSummary, elIntentBadges, elIntentProfile, elIntentRecs)
	b.AddElement(elIntentExamples, strings.Join(model.IntentExamples, "\n"))
	b.AddCanvas(cvIntentPreferences)
}

// validateQuery rejects input that must not be sent.
func validateQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	switch {
	case q == "":
		return "", &MalformedInputError{Field: "query", Reason: "describe what you are looking for"}
	case utf8.RuneCountInString(q) > maxQueryLength:
		return "", &MalformedInputError{Field: "query", Reason: fmt.Sprintf("longer than %d characters", maxQueryLength)}
	}
	return q, nil
}

// SetQuery stores a validated query for the next load.
func (p *intentPage) SetQuery(q string) error {
	q, err := validateQuery(q)
	if err != nil {
		return err
	}
	p.query = q
	p.set(elIntentQuery, q)
	return nil
}

func (p *intentPage) Loader(ctx context.Context) func() (any, error) {
	if p.query == "" {
		return func() (any, error) { return (*model.HybridResponse)(nil), nil }
	}
	client := p.deps.Client
	req := model.HybridRequest{
		UserID:    p.deps.UserID,
		UserInput: p.query,
		SessionID: p.deps.SessionID,
		Limit:     model.RecommendationLimit,
		Strategy:  model.DefaultStrategy,
	}
	return func() (any, error) {
		resp, err := client.HybridRecommendations(ctx, req).Unwrap()
		if err != nil {
			return nil, err
		}
		return &resp, nil
	}
}

func (p *intentPage) Apply(data any) viewstate.Outcome {
	resp, ok := data.(*model.HybridResponse)
	if !ok {
		return p.Fail(fmt.Errorf("intent analysis: unexpected payload %T", data))
	}
	p.loaded = true
	p.clearError()
	if resp == nil {
		return viewstate.OutcomeSuccess
	}
	p.last = resp

	ia := resp.IntentAnalysis
	p.set(elIntentSummary, ia.AnalysisSummary)
	badges := []string{
		"intent: " + ia.IntentType,
		"confidence: " + formatPercent(ia.Confidence*100),
	}
	if ia.UrgencyLevel != "" {
		badges = append(badges, "urgency: "+ia.UrgencyLevel)
	}
	if len(ia.PriceRange) == 2 {
		badges = append(badges, fmt.Sprintf("price: %s-%s", formatPrice(ia.PriceRange[0]), formatPrice(ia.PriceRange[1])))
	}
	lines := []string{strings.Join(badges, "  |  ")}
	if len(ia.ProductCategories) > 0 {
		lines = append(lines, "categories: "+strings.Join(ia.ProductCategories, ", "))
	}
	if len(ia.BrandPreferences) > 0 {
		lines = append(lines, "brands: "+strings.Join(ia.BrandPreferences, ", "))
	}
	if len(ia.Keywords) > 0 {
		lines = append(lines, "keywords: "+strings.Join(ia.Keywords, ", "))
	}
	p.set(elIntentBadges, strings.Join(lines, "\n"))

	bp := resp.BehaviorProfile
	p.set(elIntentProfile, fmt.Sprintf("%s past behaviors, %d preferred categories", formatCount(bp.TotalBehaviors), len(bp.CategoryPreferences)))
	prefs := make([]string, 0, len(bp.CategoryPreferences))
	for c := range bp.CategoryPreferences {
		prefs = append(prefs, c)
	}
	sort.Strings(prefs)
	points := make([]chart.Point, 0, len(prefs))
	for _, c := range prefs {
		points = append(points, chart.Point{Label: c, Value: bp.CategoryPreferences[c] * 100})
	}
	p.drawChart(chartIntentPreferences, cvIntentPreferences, chart.Config{Kind: chart.KindHorizontalBar, Title: "Preferences", Points: points, Color: ColorPurple})

	rows := make([][]string, 0, len(resp.Recommendations))
	for _, r := range resp.Recommendations {
		rows = append(rows, []string{r.Name, r.Category, r.Brand, formatPrice(r.Price), fmt.Sprintf("%.2f", r.FinalScore), r.RecommendationReason})
	}
	if len(rows) == 0 {
		rows = [][]string{{"No matching products"}}
	}
	p.setRows(elIntentRecs, rows)
	return viewstate.OutcomeSuccess
}

func (p *intentPage) Fail(err error) viewstate.Outcome {
	p.loaded = true
	p.showError(err)
	return viewstate.OutcomeFailure
}

func (p *intentPage) ExportData() any {
	if p.last == nil {
		return nil
	}
	return map[string]any{"query": p.query, "result": p.last}
}

func (p *intentPage) View(width, height int) string {
	b := p.board
	if p.query == "" {
		prompt := lipgloss.JoinVertical(lipgloss.Left,
			deckTitleStyle.Render("Describe what you are looking for"),
			helpStyle.Render("press / to type a request, for example:"),
			"",
			b.Text(elIntentExamples),
		)
		return renderBox("", prompt, width)
	}

	query := renderBox("Request", b.Text(elIntentQuery)+"\n"+helpStyle.Render("/: new request  r: resend"), width)
	analysis := renderBox("Intent", strings.TrimSpace(b.Text(elIntentBadges)+"\n"+helpStyle.Render(b.Text(elIntentSummary))), width)

	half := max(24, width/2-1)
	chartH := max(4, min(6, height/4))
	profile := renderBox("Behavior profile", b.Text(elIntentProfile)+"\n"+p.chartView(chartIntentPreferences, half-4, chartH), half)
	recs := renderBox("Recommendations",
		renderTable([]string{"Product", "Category", "Brand", "Price", "Score", "Why"}, b.Rows(elIntentRecs), width-4, model.RecommendationLimit), width)

	return lipgloss.JoinVertical(lipgloss.Left, query, analysis, profile, recs)
}
