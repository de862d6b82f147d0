package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-roster/internal/employee"
	"go-roster/internal/photo"
	"go-roster/internal/sheetstore"

	"go.uber.org/zap"
)

// RunWorker runs the periodic photo cleanup: photo files older than
// PHOTO_TTL that no roster row references are removed every
// CLEANUP_INTERVAL. A missed cycle just leaves a few orphaned thumbnails
// around until the next one.
func RunWorker() error {
	logger := zap.L().Named("app.worker")
	cfg := loadConfig()

	store, err := sheetstore.Open(cfg.RosterFile)
	if err != nil {
		return err
	}
	defer store.Close()

	employeeRepo := employee.NewRepository(store)
	photoService := photo.NewService(employeeRepo, cfg.PhotoDir, cfg.PhotoBaseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runCleanupLoop(ctx, photoService, cfg.PhotoTTL, cfg.CleanupEvery, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func runCleanupLoop(
	ctx context.Context,
	photoService photo.Service,
	ttl time.Duration,
	interval time.Duration,
	logger *zap.Logger,
) {
	run := func() {
		removed, err := photoService.CleanupStale(ctx, ttl)
		if err != nil {
			logger.Error("photo cleanup failed", zap.Error(err))
			return
		}
		logger.Debug("photo cleanup cycle done", zap.Int("removed", removed))
	}

	run() // one pass at startup, then on the ticker

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			run()
		case <-ctx.Done():
			return
		}
	}
}
