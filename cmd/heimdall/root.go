package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tinytelemetry/heimdall/internal/apiclient"
	"github.com/tinytelemetry/heimdall/internal/export"
	"github.com/tinytelemetry/heimdall/internal/model"
	"github.com/tinytelemetry/heimdall/internal/snapshot"
	"github.com/tinytelemetry/heimdall/internal/tui"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "heimdall",
		Short:         "Terminal console for the Heimdall recommendation API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/heimdall/config.yml)")
	flags := cmd.Flags()
	flags.String("base-url", model.DefaultBaseURL, "Heimdall API root")
	flags.String("default-page", string(model.PageDashboard), "page shown at startup")
	flags.String("user-id", model.DefaultUserID, "initially selected user")
	flags.Duration("request-timeout", 0, "per-request timeout (0 = none)")
	flags.String("export-dir", ".", "directory for exports")
	flags.String("export-format", string(export.FormatJSON), "export format (json or yaml)")
	flags.String("log-level", "info", "log level")

	cmd.AddCommand(newServeDemoCmd(&configPath), newVersionCmd())
	return cmd
}

func runTUI(ctx context.Context, cfg appConfig) error {
	logger, closeLog, err := newFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	page, _ := model.ParsePageID(cfg.DefaultPage)
	format, _ := export.ParseFormat(cfg.ExportFormat)
	sessionID := "session_" + uuid.NewString()

	client := apiclient.New(cfg.BaseURL,
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithLogger(logger.Named("api")),
	)

	deps := &tui.Deps{
		Client:          client,
		Logger:          logger.Named("tui"),
		SessionID:       sessionID,
		UserID:          cfg.UserID,
		DefaultPage:     page,
		StatusInterval:  cfg.StatusInterval,
		MonitorInterval: cfg.MonitorInterval,
		ExportDir:       cfg.ExportDir,
		ExportFormat:    format,
	}

	// The console works without the cache; it only loses offline snapshots.
	if cache := openCache(ctx, cfg, logger); cache != nil {
		defer cache.Close()
		deps.Cache = cache
	}

	logger.Info("console starting",
		zap.String("version", version),
		zap.String("base_url", cfg.BaseURL),
		zap.String("session_id", sessionID),
		zap.String("page", string(page)))

	app := tui.NewApp(deps)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	stats := client.Stats()
	logger.Info("console stopped",
		zap.Int64("api_calls", stats.Total),
		zap.Int64("api_failures", stats.Failure))
	return nil
}

// openCache opens the snapshot cache and drops entries past retention. It
// returns nil when the cache cannot be opened.
func openCache(ctx context.Context, cfg appConfig, logger *zap.Logger) *snapshot.Store {
	cache, err := snapshot.Open(ctx, cfg.CachePath)
	if err != nil {
		logger.Warn("snapshot cache unavailable", zap.String("path", cfg.CachePath), zap.Error(err))
		return nil
	}
	if n, err := cache.Prune(ctx, cfg.CacheRetention); err != nil {
		logger.Warn("snapshot prune failed", zap.Error(err))
	} else if n > 0 {
		logger.Info("pruned old snapshots", zap.Int64("removed", n))
	}
	keys, err := cache.Keys(ctx)
	if err != nil {
		logger.Warn("snapshot keys unavailable", zap.Error(err))
	} else {
		logger.Info("snapshot cache ready", zap.String("path", cfg.CachePath), zap.Strings("keys", keys))
	}
	return cache
}
