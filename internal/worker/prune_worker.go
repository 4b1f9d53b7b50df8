package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application"
)

// PruneWorker deletes lookup history older than the retention window.
type PruneWorker struct {
	lookupRepo application.LookupRepository
	interval   time.Duration
	retention  time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = time.Hour

func NewPruneWorker(
	lookupRepo application.LookupRepository,
	interval time.Duration,
	retention time.Duration,
	logger *slog.Logger,
) *PruneWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &PruneWorker{
		lookupRepo: lookupRepo,
		interval:   interval,
		retention:  retention,
		logger:     logger,
		now:        time.Now,
	}
}

// Start prunes once, then on every tick until ctx is cancelled.
func (w *PruneWorker) Start(ctx context.Context) {
	w.logger.Info("prune worker started", "interval", w.interval, "retention", w.retention)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if _, err := w.Prune(ctx); err != nil {
		w.logger.Error("lookup pruning failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("prune worker stopping")
			return
		case <-ticker.C:
			if _, err := w.Prune(ctx); err != nil {
				w.logger.Error("lookup pruning failed", "error", err)
			}
		}
	}
}

func (w *PruneWorker) Interval() time.Duration {
	return w.interval
}

// Prune runs a single deletion pass and reports how many lookups went.
func (w *PruneWorker) Prune(ctx context.Context) (int64, error) {
	cutoff := w.now().Add(-w.retention)

	deleted, err := w.lookupRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		w.logger.Info("pruned lookup history",
			"deleted", deleted,
			"cutoff", cutoff)
	}

	return deleted, nil
}
