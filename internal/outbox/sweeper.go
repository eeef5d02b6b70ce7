package outbox

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
)

// Sweeper periodically returns effects stuck in running state (a worker
// died mid-flight) to the ready list.
type Sweeper struct {
	cfg    *config.OutboxConfig
	queue  Queue
	logger *zap.Logger
	cron   *cron.Cron
}

// NewSweeper creates a cron-driven stale-effect sweeper.
func NewSweeper(cfg *config.OutboxConfig, queue Queue, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		cfg:    cfg,
		queue:  queue,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules the sweep and starts the cron runner.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.cfg.SweepSchedule, func() {
		moved, err := s.queue.RequeueStale(context.Background(), s.cfg.StaleThreshold)
		if err != nil {
			s.logger.Error("stale effect sweep failed", zap.Error(err))
			return
		}
		if moved > 0 {
			s.logger.Info("requeued stale effects", zap.Int("count", moved))
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("outbox sweeper started", zap.String("schedule", s.cfg.SweepSchedule))
	return nil
}

// Stop stops the cron runner and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("outbox sweeper stopped")
}
