package di

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
	"github.com/jrjohn/academy-cloud-go/internal/outbox"
)

// OutboxModule provides the effect queue and publisher. The API server only
// enqueues effects; draining them is the worker binary's job.
var OutboxModule = fx.Module("outbox",
	fx.Provide(
		provideOutboxQueue,
		provideOutboxPublisher,
	),
)

func provideOutboxQueue(client *redis.Client) outbox.Queue {
	return outbox.NewRedisQueue(client)
}

func provideOutboxPublisher(cfg *config.OutboxConfig, queue outbox.Queue, logger *zap.Logger) *outbox.Publisher {
	return outbox.NewPublisher(cfg, queue, logger)
}
