package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/heimdall/internal/mockapi"
	"github.com/tinytelemetry/heimdall/internal/model"
)

func newServeDemoCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve-demo",
		Short: "Serve a demo Heimdall API with sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath, cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return runDemo(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("demo-addr", model.DefaultDemoAddr, "listen address")
	cmd.Flags().String("log-level", "info", "log level")
	return cmd
}

func runDemo(ctx context.Context, cfg appConfig) error {
	logger, err := newConsoleLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mockapi.NewServer(cfg.DemoAddr, logger.Named("demo"))
	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting demo backend: %w", err)
	}
	fmt.Printf("Demo API on http://%s/api/v1 (metrics on /metrics). Ctrl+C to stop.\n", srv.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down demo backend")
		return srv.Stop()
	})
	if err := g.Wait(); err != nil {
		logger.Error("demo backend shutdown", zap.Error(err))
		return err
	}
	return nil
}
