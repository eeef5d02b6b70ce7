package outbox

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
)

// Handler executes one effect type.
type Handler func(ctx context.Context, payload []byte) error

// EffectRecorder receives per-effect outcome counts. Implemented by the
// observability metrics provider.
type EffectRecorder interface {
	RecordOutboxEffect(effectType, outcome string)
}

// Pool drains the effect queue with a fixed set of worker goroutines. A
// separate goroutine moves due retries back to the ready list.
type Pool struct {
	cfg     *config.OutboxConfig
	queue   Queue
	metrics EffectRecorder
	logger  *zap.Logger

	mu       sync.RWMutex
	handlers map[string]Handler

	running atomic.Bool
	wg      sync.WaitGroup
	stopCh  chan struct{}

	processed atomic.Int64
	failed    atomic.Int64
}

// NewPool creates a worker pool over the queue. metrics may be nil.
func NewPool(cfg *config.OutboxConfig, queue Queue, metrics EffectRecorder, logger *zap.Logger) *Pool {
	return &Pool{
		cfg:      cfg,
		queue:    queue,
		metrics:  metrics,
		logger:   logger,
		handlers: make(map[string]Handler),
		stopCh:   make(chan struct{}),
	}
}

// Register binds a handler to an effect type.
func (p *Pool) Register(effectType string, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[effectType] = handler
	p.logger.Info("registered effect handler", zap.String("type", effectType))
}

// Start launches the workers and the retry mover.
func (p *Pool) Start(ctx context.Context) error {
	if p.running.Load() {
		return fmt.Errorf("outbox pool already running")
	}
	p.running.Store(true)

	p.logger.Info("starting outbox pool",
		zap.Int("concurrency", p.cfg.Concurrency),
		zap.Duration("poll_interval", p.cfg.PollInterval))

	for i := 0; i < p.cfg.Concurrency; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.wg.Add(1)
	go p.retryMover(ctx)

	return nil
}

// Stop drains the pool, waiting up to the configured shutdown timeout.
func (p *Pool) Stop(ctx context.Context) error {
	if !p.running.Load() {
		return nil
	}
	p.running.Store(false)
	close(p.stopCh)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("outbox pool stopped")
	case <-time.After(p.cfg.ShutdownTimeout):
		p.logger.Warn("outbox pool shutdown timed out")
	case <-ctx.Done():
		p.logger.Warn("outbox pool shutdown cancelled")
	}
	return nil
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	logger := p.logger.With(zap.Int("worker_id", id))
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.processNext(ctx, logger)
		}
	}
}

func (p *Pool) processNext(ctx context.Context, logger *zap.Logger) {
	effect, err := p.queue.Dequeue(ctx)
	if err == ErrQueueEmpty {
		return
	}
	if err != nil {
		if p.running.Load() {
			logger.Error("failed to dequeue effect", zap.Error(err))
		}
		return
	}

	logger = logger.With(
		zap.String("effect_id", effect.ID),
		zap.String("effect_type", effect.Type),
		zap.Int("attempt", effect.Attempts))

	p.mu.RLock()
	handler, ok := p.handlers[effect.Type]
	p.mu.RUnlock()
	if !ok {
		logger.Error("no handler registered for effect type")
		p.queue.Fail(ctx, effect.ID, fmt.Errorf("no handler for effect type %q", effect.Type))
		p.recordOutcome(effect.Type, "failed")
		return
	}

	start := time.Now()
	err = handler(ctx, effect.Payload)
	duration := time.Since(start)

	if err != nil {
		logger.Warn("effect failed", zap.Error(err), zap.Duration("duration", duration))
		p.queue.Fail(ctx, effect.ID, err)
		p.recordOutcome(effect.Type, "failed")
		return
	}

	logger.Info("effect completed", zap.Duration("duration", duration))
	p.queue.Complete(ctx, effect.ID)
	p.recordOutcome(effect.Type, "completed")
}

func (p *Pool) recordOutcome(effectType, outcome string) {
	if outcome == "completed" {
		p.processed.Add(1)
	} else {
		p.failed.Add(1)
	}
	if p.metrics != nil {
		p.metrics.RecordOutboxEffect(effectType, outcome)
	}
}

func (p *Pool) retryMover(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			moved, err := p.queue.ProcessScheduled(ctx)
			if err != nil {
				p.logger.Error("failed to process scheduled effects", zap.Error(err))
			} else if moved > 0 {
				p.logger.Debug("moved scheduled effects", zap.Int("count", moved))
			}
		}
	}
}

// Stats returns processed/failed counters for the metrics endpoint.
func (p *Pool) Stats() (processed, failed int64) {
	return p.processed.Load(), p.failed.Load()
}
