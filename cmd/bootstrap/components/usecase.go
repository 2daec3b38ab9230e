package components

import (
	"go.uber.org/fx"

	"ticketing-orchestrator/internal/domain/booking"
	"ticketing-orchestrator/internal/handler/api"
	"ticketing-orchestrator/internal/infra/metrics"
	"ticketing-orchestrator/internal/pkg/clock"
	"ticketing-orchestrator/internal/pkg/config"
	"ticketing-orchestrator/internal/usecase/commands"
	"ticketing-orchestrator/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	metrics.NewSagaMetrics,
	fx.Annotate(
		booking.NewRateTablePriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	func(cfg config.Config) config.SagaConfig { return cfg.Saga },
	func(store commands.IdempotencyStore, clk clock.Clock, cfg config.Config) *commands.IdempotencyGuard {
		return commands.NewIdempotencyGuard(store, clk, cfg.Saga.IdempotencyKeyTTL)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		fx.Annotate(
			commands.NewPurchaseOrchestrator,
			fx.As(new(api.PurchaseCommands)),
		),
		fx.Annotate(
			commands.NewCancellationOrchestrator,
			fx.As(new(api.CancellationCommands)),
		),
		fx.Annotate(
			commands.NewTradeOrchestrator,
			fx.As(new(api.TradeCommands)),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		fx.Annotate(
			queries.NewAvailabilityQuery,
			fx.As(new(api.AvailabilityQueries)),
		),
		fx.Annotate(
			queries.NewTicketQuery,
			fx.As(new(api.TicketQueries)),
		),
		fx.Annotate(
			queries.NewTradeQuery,
			fx.As(new(api.TradeQueries)),
		),
	),
)
