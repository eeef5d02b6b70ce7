package outbox

import (
	"context"

	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
)

// Publisher is the service-facing enqueue API. Publish failures are logged
// but never propagated: a lost side effect must not fail the operation that
// produced it.
type Publisher struct {
	queue      Queue
	maxRetries int
	logger     *zap.Logger
}

// NewPublisher creates a Publisher over the queue.
func NewPublisher(cfg *config.OutboxConfig, queue Queue, logger *zap.Logger) *Publisher {
	return &Publisher{
		queue:      queue,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// PublishMail enqueues a mail effect of the given type.
func (p *Publisher) PublishMail(ctx context.Context, effectType string, payload MailPayload) {
	effect, err := NewEffect(effectType, payload, p.maxRetries)
	if err != nil {
		p.logger.Error("failed to build mail effect",
			zap.String("type", effectType),
			zap.Error(err))
		return
	}
	if err := p.queue.Enqueue(ctx, effect); err != nil {
		p.logger.Error("failed to enqueue mail effect",
			zap.String("type", effectType),
			zap.String("effect_id", effect.ID),
			zap.Error(err))
		return
	}
	p.logger.Debug("mail effect enqueued",
		zap.String("type", effectType),
		zap.String("effect_id", effect.ID))
}
