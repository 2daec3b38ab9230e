package bootstrap

import (
	"go.uber.org/fx"

	"ticketing-orchestrator/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
