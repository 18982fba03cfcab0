package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/site"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, HumanReadable: cfg.LogPretty})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	data, err := content.Default()
	if err != nil {
		return err
	}

	opts := site.Options{Site: data, Log: log, ViewTTL: cfg.ViewTTL, MaxViews: cfg.MaxViews}
	if cfg.MetricsDB != "" {
		store, err := metrics.Open(ctx, cfg.MetricsDB)
		if err != nil {
			return err
		}
		defer store.Close()

		opts.Recorder = store
		if cfg.StatsEnabled {
			opts.Stats = store
		}
		go cleanupMetrics(ctx, store, cfg, log)
		log.With("path", cfg.MetricsDB).Info("privacy-conscious metrics enabled with hashed IP addresses")
	}

	srv, err := site.New(opts)
	if err != nil {
		return err
	}
	return srv.Serve(ctx, cfg.Addr())
}
