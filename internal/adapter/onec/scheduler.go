package onec

import (
	"context"
	"time"

	"github.com/dibekkz/dibek/internal/core/port"
	"go.uber.org/zap"
)

// tickInterval is how often the scheduler wakes up. The effective sync
// cadence comes from the integration's own SyncInterval, checked inside
// the runner.
const tickInterval = time.Minute

// Scheduler drives periodic auto-sync sweeps.
type Scheduler struct {
	runner port.SyncRunner
	logger *zap.Logger
}

func NewScheduler(runner port.SyncRunner, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		runner: runner,
		logger: logger,
	}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := s.runner.RunAutoSync(ctx)
			if err != nil {
				s.logger.Error("Auto sync", zap.Error(err))
			}
		case <-ctx.Done():
			s.logger.Debug("Sync scheduler stopped")
			return
		}
	}
}
