package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ticketing-orchestrator/internal/handler/api"
	"ticketing-orchestrator/internal/handler/middleware"
	"ticketing-orchestrator/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	purchaseHandler *api.PurchaseHandler,
	cancellationHandler *api.CancellationHandler,
	tradeHandler *api.TradeHandler,
	ticketHandler *api.TicketHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, purchaseHandler, cancellationHandler, tradeHandler, ticketHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	purchaseHandler *api.PurchaseHandler,
	cancellationHandler *api.CancellationHandler,
	tradeHandler *api.TradeHandler,
	ticketHandler *api.TicketHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability/:event", Handler: ticketHandler.Availability},
			{Method: http.MethodGet, Path: "/availability/:event/:category", Handler: ticketHandler.Availability},
		})

		authRequired := apiGroup.Group("")
		authRequired.Use(authMiddleware.RequireAuth())
		{
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/lock/:event/:category", Handler: purchaseHandler.Lock},
				{Method: http.MethodPost, Path: "/purchase/:event/:category", Handler: purchaseHandler.Purchase},
				{Method: http.MethodPost, Path: "/timeout/:event/:category", Handler: purchaseHandler.Timeout},

				{Method: http.MethodGet, Path: "/refund-eligibility/:txn", Handler: cancellationHandler.RefundEligibility},
				{Method: http.MethodPost, Path: "/cancel/:txn", Handler: cancellationHandler.Cancel},

				{Method: http.MethodGet, Path: "/tickets", Handler: ticketHandler.MyTickets},
				{Method: http.MethodGet, Path: "/tickets/pending/:event", Handler: ticketHandler.Pending},
				{Method: http.MethodGet, Path: "/tickets/up-for-trade/:event", Handler: ticketHandler.UpForTrade},
				{Method: http.MethodPut, Path: "/tickets/:ticket/list-for-trade", Handler: tradeHandler.ListForTrade},
				{Method: http.MethodPost, Path: "/tickets/:ticket/verify", Handler: ticketHandler.Verify},

				{Method: http.MethodPost, Path: "/trade-requests", Handler: tradeHandler.Propose},
				{Method: http.MethodGet, Path: "/trade-requests", Handler: tradeHandler.List},
				{Method: http.MethodGet, Path: "/trade-requests/:id", Handler: tradeHandler.Get},
				{Method: http.MethodPatch, Path: "/trade-requests/:id/accept", Handler: tradeHandler.Accept},
				{Method: http.MethodPatch, Path: "/trade-requests/:id/cancel", Handler: tradeHandler.Cancel},

				{Method: http.MethodGet, Path: "/trade-status/:ticket", Handler: tradeHandler.StatusForTicket},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
