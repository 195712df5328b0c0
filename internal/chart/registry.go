package chart

import (
	"errors"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tinytelemetry/heimdall/internal/board"
)

// Registry owns the named chart handles of the active page. At most one
// handle exists per name. It is not safe for concurrent use.
type Registry struct {
	board    *board.Board
	renderer Renderer
	logger   *zap.Logger

	handles   map[string]Handle
	destroyed int
}

// NewRegistry creates a registry drawing on b with r.
func NewRegistry(b *board.Board, r Renderer, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		board:    b,
		renderer: r,
		logger:   logger,
		handles:  make(map[string]Handle),
	}
}

// Create builds a chart under name on the canvas canvasID, replacing any
// chart already registered under name and any residual chart the renderer
// still has bound to the canvas. If the renderer still refuses the canvas,
// the canvas is cloned and construction retried once on the clone.
//
// A missing canvas is not fatal: Create logs a warning and returns a nil
// handle with a *board.TargetMissingError.
func (r *Registry) Create(name, canvasID string, cfg Config) (Handle, error) {
	r.Destroy(name)

	canvas, err := r.board.Canvas(canvasID)
	if err != nil {
		r.logger.Warn("chart target missing", zap.String("chart", name), zap.String("canvas", canvasID))
		return nil, err
	}

	if residual, ok := r.renderer.BoundTo(canvas); ok {
		r.release(name, residual)
	}

	h, err := r.renderer.New(canvas, cfg)
	if errors.Is(err, ErrCanvasBound) {
		r.logger.Warn("canvas still bound, retrying on clone", zap.String("chart", name), zap.String("canvas", canvasID))
		clone := r.board.CloneCanvas(canvas)
		if rerr := r.board.ReplaceCanvas(canvas, clone); rerr != nil {
			return nil, &ConstructionError{Name: name, CanvasID: canvasID, Err: rerr}
		}
		h, err = r.renderer.New(clone, cfg)
	}
	if err != nil {
		r.logger.Error("chart construction failed", zap.String("chart", name), zap.Error(err))
		return nil, &ConstructionError{Name: name, CanvasID: canvasID, Err: err}
	}

	r.handles[name] = h
	return h, nil
}

// Get returns the live handle registered under name.
func (r *Registry) Get(name string) (Handle, bool) {
	h, ok := r.handles[name]
	return h, ok
}

// Destroy releases the handle registered under name, if any. A failing
// release is logged and the handle is dropped regardless.
func (r *Registry) Destroy(name string) {
	h, ok := r.handles[name]
	if !ok {
		return
	}
	delete(r.handles, name)
	r.release(name, h)
}

// DestroyAll releases every handle. The returned error aggregates release
// failures for logging; the registry is empty either way.
func (r *Registry) DestroyAll() error {
	var errs error
	for _, name := range r.Names() {
		h := r.handles[name]
		delete(r.handles, name)
		errs = multierr.Append(errs, r.release(name, h))
	}
	return errs
}

// Len returns the number of live handles.
func (r *Registry) Len() int { return len(r.handles) }

// Names returns the registered chart names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handles))
	for name := range r.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DestroyCount returns how many handles have been released so far.
func (r *Registry) DestroyCount() int { return r.destroyed }

func (r *Registry) release(name string, h Handle) error {
	r.destroyed++
	if err := h.Release(); err != nil {
		r.logger.Warn("chart release failed", zap.String("chart", name), zap.Error(err))
		return err
	}
	return nil
}
