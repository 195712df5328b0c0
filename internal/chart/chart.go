// Package chart manages named chart handles bound to board canvases.
package chart

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/heimdall/internal/board"
)

// ErrCanvasBound is returned by a Renderer asked to draw on a canvas that
// still has a live chart.
var ErrCanvasBound = errors.New("chart: canvas already in use")

// Kind selects how a chart is drawn.
type Kind int

const (
	KindBar Kind = iota
	KindHorizontalBar
	KindSparkline
)

// Point is one labelled value.
type Point struct {
	Label string
	Value float64
}

// Config describes what a chart shows.
type Config struct {
	Kind   Kind
	Title  string
	Points []Point
	Color  lipgloss.Color
}

// Handle is a live chart bound to one canvas.
type Handle interface {
	Canvas() *board.Canvas
	Config() Config
	View(width, height int) string
	Release() error
}

// Renderer constructs charts and tracks which canvas each one is bound to.
type Renderer interface {
	New(canvas *board.Canvas, cfg Config) (Handle, error)
	BoundTo(canvas *board.Canvas) (Handle, bool)
}

// ConstructionError wraps a renderer failure that survived the clone retry.
type ConstructionError struct {
	Name     string
	CanvasID string
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("chart: construct %q on %q: %v", e.Name, e.CanvasID, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }
