package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/observability"
	"github.com/jrjohn/academy-cloud-go/internal/ws"
)

// WSModule provides the notification push hub
var WSModule = fx.Module("ws",
	fx.Provide(provideHub),
)

func provideHub(logger *zap.Logger, metrics *observability.Metrics) *ws.Hub {
	hub := ws.NewHub(logger)
	hub.OnCountChange(metrics.SetWSClients)
	return hub
}
