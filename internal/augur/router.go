package augur

import (
	"github.com/gin-gonic/gin"

	"github.com/sibylline/sibyl/internal/augur/handler/middleware"
	v1 "github.com/sibylline/sibyl/internal/augur/handler/v1"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service"
	"github.com/sibylline/sibyl/pkg/logger"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	qaService   service.QAService
	authConfig  *middleware.AuthConfig
	middlewares []string
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installMiddleware(g, deps)
	installController(g, deps)
}

func installMiddleware(g *gin.Engine, deps *routerDeps) {
	names := deps.middlewares
	if len(names) == 0 {
		names = []string{"requestid", "logger", "recovery"}
	}
	for _, name := range names {
		switch name {
		case "requestid":
			g.Use(middleware.RequestID())
		case "logger":
			g.Use(middleware.Logger())
		case "recovery":
			g.Use(gin.Recovery())
		default:
			logger.Warn("unknown middleware %q, skipping", name)
		}
	}

	if deps.authConfig != nil {
		g.Use(middleware.BearerAuth(deps.authConfig))
	}
}

func installController(g *gin.Engine, deps *routerDeps) {
	// Handlers.
	queryHandler := v1.NewQueryHandler(deps.qaService)
	healthHandler := v1.NewHealthHandler(deps.qaService)

	// Query endpoints live at the root, not under a version group;
	// deployed clients expect these exact paths.
	g.POST("/query", queryHandler.Query)
	g.POST("/multi-agent-query", queryHandler.MultiAgentQuery)

	// Liveness and build info.
	g.GET("/healthz", healthHandler.Healthz)
	g.GET("/version", healthHandler.Version)
}
