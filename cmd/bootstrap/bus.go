package bootstrap

import (
	"context"

	"go.uber.org/fx"

	"ticketing-orchestrator/internal/infra/bus"
	"ticketing-orchestrator/internal/pkg/config"
)

var BusModule = fx.Module("bus",
	fx.Provide(
		NewPublisher,
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) bus.Publisher {
	if !cfg.AMQP.Enabled {
		return bus.NopPublisher{}
	}

	pub := bus.NewAMQPPublisher(cfg.AMQP)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
