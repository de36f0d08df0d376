package workers

import (
	"context"
	"time"

	"weijob_backend/internal/logger"
	"weijob_backend/internal/services"

	"gorm.io/gorm"
)

// UnlockWorker periodically purges expired unlock records. Purging is
// pure housekeeping: jobs published today stay free whether or not the
// purge ever runs.
type UnlockWorker struct {
	db           *gorm.DB
	shareService services.ShareService
	retention    time.Duration
	interval     time.Duration
}

func NewUnlockWorker(db *gorm.DB, shareService services.ShareService, retention, interval time.Duration) *UnlockWorker {
	return &UnlockWorker{
		db:           db,
		shareService: shareService,
		retention:    retention,
		interval:     interval,
	}
}

// Start runs the purge loop until the context is cancelled.
func (w *UnlockWorker) Start(ctx context.Context) {
	go w.purgeLoop(ctx)
}

func (w *UnlockWorker) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Unlock worker stopped")
			return
		case <-ticker.C:
			count, err := w.shareService.PurgeExpired(ctx, w.db, w.retention)
			if err != nil {
				logger.WorkerLog("unlock_worker", "purge_expired", err)
				continue
			}
			if count > 0 {
				logger.Info("Purged expired unlock records", "count", count)
			}
		}
	}
}
