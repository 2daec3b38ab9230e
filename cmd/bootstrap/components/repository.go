package components

import (
	"context"

	"go.uber.org/fx"

	repo_impl "ticketing-orchestrator/internal/infra/repository"
	"ticketing-orchestrator/internal/pkg/config"
	"ticketing-orchestrator/internal/usecase/commands"
	"ticketing-orchestrator/internal/usecase/queries"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewTradeLedger,
			fx.As(new(commands.TradeLedger)),
			fx.As(new(queries.TradeReader)),
		),
		fx.Annotate(
			repo_impl.NewIdempotencyStore,
			fx.As(new(commands.IdempotencyStore)),
			fx.As(new(repo_impl.ExpiredDeleter)),
		),
	),
	fx.Invoke(runExpirySweeper),
)

func runExpirySweeper(lc fx.Lifecycle, store repo_impl.ExpiredDeleter, cfg config.Config) {
	sweeper := repo_impl.NewExpirySweeper(store, cfg.Saga.IdempotencySweep)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
