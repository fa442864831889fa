package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const purgeTimeout = 2 * time.Minute

// PresetRetention periodically deletes presets nobody has applied within the retention window
type PresetRetention struct {
	store       PresetStore
	logger      *zap.SugaredLogger
	retention   time.Duration
	schedule    string
	cronManager *cron.Cron
	now         func() time.Time
}

// NewPresetRetention creates the retention job; call Start to schedule it
func NewPresetRetention(store PresetStore, logger *zap.SugaredLogger, retention time.Duration, schedule string) *PresetRetention {
	return &PresetRetention{
		store:       store,
		logger:      logger,
		retention:   retention,
		schedule:    schedule,
		cronManager: cron.New(cron.WithLocation(time.UTC)),
		now:         time.Now,
	}
}

// Start registers the purge job and starts the scheduler
func (pr *PresetRetention) Start() error {
	_, err := pr.cronManager.AddFunc(pr.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		if _, err := pr.RunOnce(ctx); err != nil {
			pr.logger.Errorw("preset purge failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule preset purge: %w", err)
	}

	pr.cronManager.Start()
	pr.logger.Infow("preset retention scheduled", "schedule", pr.schedule, "retention", pr.retention.String())
	return nil
}

// Stop halts the scheduler and waits for a running purge to finish
func (pr *PresetRetention) Stop() {
	<-pr.cronManager.Stop().Done()
}

// RunOnce purges stale presets immediately and returns how many were removed
func (pr *PresetRetention) RunOnce(ctx context.Context) (int64, error) {
	cutoff := pr.now().UTC().Add(-pr.retention)

	purged, err := pr.store.PurgeStalePresets(ctx, cutoff)
	if err != nil {
		return purged, err
	}

	pr.logger.Infow("stale presets purged", "count", purged, "cutoff", cutoff)
	return purged, nil
}
