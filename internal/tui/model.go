package tui

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tinytelemetry/heimdall/internal/apiclient"
	"github.com/tinytelemetry/heimdall/internal/export"
	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/snapshot"
)

// SnapshotCache stores the last good payload per endpoint.
type SnapshotCache interface {
	PutJSON(ctx context.Context, key, source string, v any) error
	GetJSON(ctx context.Context, key string, v any) (snapshot.Entry, bool, error)
}

// Deps is the application state built once at startup and shared by every
// page controller. Fields are read on the UI loop only; loaders copy what
// they need before leaving it.
type Deps struct {
	Client *apiclient.Client
	Cache  SnapshotCache
	Logger *zap.Logger

	SessionID string
	UserID    string

	DefaultPage     model.PageID
	StatusInterval  time.Duration
	MonitorInterval time.Duration

	ExportDir    string
	ExportFormat export.Format

	Now func() time.Time
}

func (d *Deps) withDefaults() *Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.UserID == "" {
		d.UserID = model.DefaultUserID
	}
	if !d.DefaultPage.Valid() {
		d.DefaultPage = model.PageDashboard
	}
	if d.StatusInterval <= 0 {
		d.StatusInterval = model.DefaultStatusInterval
	}
	if d.MonitorInterval <= 0 {
		d.MonitorInterval = model.DefaultMonitorInterval
	}
	if d.ExportFormat == "" {
		d.ExportFormat = export.FormatJSON
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}
