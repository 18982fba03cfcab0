package main

import (
	"context"
	"time"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/metrics"
)

// cleanupMetrics enforces the retention window at startup and then daily.
func cleanupMetrics(ctx context.Context, store *metrics.Store, cfg config.Config, log *logger.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		removed, err := store.Cleanup(ctx, cfg.MetricsRetention)
		if err != nil {
			log.Error(err, "metrics cleanup")
		} else if removed > 0 {
			log.With("removed", removed).Info("privacy cleanup removed expired metrics")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
