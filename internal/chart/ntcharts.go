package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/heimdall/internal/board"
)

var errReleased = errors.New("chart: handle already released")

const legendWidth = 22

var (
	defaultColor = lipgloss.Color("39")
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// NTRenderer draws charts with ntcharts. It keeps its own canvas to handle
// map, which Registry probes before constructing.
type NTRenderer struct {
	bound map[*board.Canvas]*ntHandle
}

// NewNTRenderer returns an empty renderer.
func NewNTRenderer() *NTRenderer {
	return &NTRenderer{bound: make(map[*board.Canvas]*ntHandle)}
}

func (r *NTRenderer) New(canvas *board.Canvas, cfg Config) (Handle, error) {
	if _, ok := r.bound[canvas]; ok {
		return nil, ErrCanvasBound
	}
	if cfg.Color == "" {
		cfg.Color = defaultColor
	}
	h := &ntHandle{renderer: r, canvas: canvas, cfg: cfg}
	r.bound[canvas] = h
	return h, nil
}

func (r *NTRenderer) BoundTo(canvas *board.Canvas) (Handle, bool) {
	h, ok := r.bound[canvas]
	if !ok {
		return nil, false
	}
	return h, true
}

type ntHandle struct {
	renderer *NTRenderer
	canvas   *board.Canvas
	cfg      Config
	released bool
}

func (h *ntHandle) Canvas() *board.Canvas { return h.canvas }
func (h *ntHandle) Config() Config        { return h.cfg }

func (h *ntHandle) Release() error {
	if h.released {
		return errReleased
	}
	h.released = true
	if cur, ok := h.renderer.bound[h.canvas]; ok && cur == h {
		delete(h.renderer.bound, h.canvas)
	}
	return nil
}

// View renders the chart into a width x height block.
func (h *ntHandle) View(width, height int) string {
	if h.released {
		return ""
	}
	if len(h.cfg.Points) == 0 {
		return mutedStyle.Render("No data available")
	}
	width = max(width, 10)
	height = max(height, 3)

	switch h.cfg.Kind {
	case KindSparkline:
		return h.sparkline(width, height)
	default:
		return h.bars(width, height)
	}
}

func (h *ntHandle) sparkline(width, height int) string {
	style := lipgloss.NewStyle().Foreground(h.cfg.Color)
	sl := sparkline.New(width, height, sparkline.WithStyle(style))
	values := make([]float64, len(h.cfg.Points))
	for i, p := range h.cfg.Points {
		values[i] = p.Value
	}
	sl.PushAll(values)
	sl.Draw()
	return sl.View()
}

func (h *ntHandle) bars(width, height int) string {
	chartWidth := width - legendWidth - 2
	if chartWidth < 10 {
		chartWidth = 10
	}

	opts := []barchart.Option{barchart.WithBarGap(1), barchart.WithNoAxis()}
	if h.cfg.Kind == KindHorizontalBar {
		opts = append(opts, barchart.WithHorizontalBars(), barchart.WithBarWidth(1))
	} else {
		barWidth := max(1, (chartWidth/len(h.cfg.Points))-1)
		opts = append(opts, barchart.WithBarWidth(min(barWidth, 4)))
	}

	style := lipgloss.NewStyle().Foreground(h.cfg.Color).Background(h.cfg.Color)
	bc := barchart.New(chartWidth, height, opts...)
	for _, p := range h.cfg.Points {
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: p.Label, Value: p.Value, Style: style},
			},
		})
	}
	bc.Draw()

	legend := make([]string, 0, len(h.cfg.Points))
	colorStyle := lipgloss.NewStyle().Foreground(h.cfg.Color)
	for i, p := range h.cfg.Points {
		if i >= height {
			break
		}
		label := truncate(p.Label, legendWidth-9)
		legend = append(legend, colorStyle.Render(fmt.Sprintf("%-*s %8s", legendWidth-9, label, formatValue(p.Value))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, bc.View(), "  ", strings.Join(legend, "\n"))
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
