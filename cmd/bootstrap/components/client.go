package components

import (
	"go.uber.org/fx"

	"ticketing-orchestrator/internal/client"
	"ticketing-orchestrator/internal/pkg/config"
)

var ClientModule = fx.Module("client",
	fx.Provide(
		func(cfg config.Config) config.CollaboratorConfig { return cfg.Collaborators },
		fx.Annotate(
			client.NewSeatClient,
			fx.As(new(client.Seat)),
		),
		fx.Annotate(
			client.NewTicketClient,
			fx.As(new(client.Ticket)),
		),
		fx.Annotate(
			client.NewPaymentClient,
			fx.As(new(client.Payment)),
		),
		fx.Annotate(
			client.NewEventClient,
			fx.As(new(client.EventCatalog)),
		),
	),
)
