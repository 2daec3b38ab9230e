package components

import (
	"go.uber.org/fx"

	"ticketing-orchestrator/internal/handler"
	"ticketing-orchestrator/internal/handler/api"
	"ticketing-orchestrator/internal/handler/middleware"
	"ticketing-orchestrator/internal/pkg/config"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewPurchaseHandler,
		api.NewCancellationHandler,
		api.NewTradeHandler,
		api.NewTicketHandler,
		func(cfg config.Config) *middleware.AuthMiddleware {
			return middleware.NewAuthMiddleware(cfg.JWT)
		},
	),
	fx.Invoke(handler.NewRouter),
)
