package bootstrap

import (
	"go.uber.org/fx"

	"ticketing-orchestrator/cmd/bootstrap/components"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	BusModule,
	components.ClientModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
