package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/api"
	"github.com/pageza/pantry-chef/backend/internal/metrics"
	"github.com/pageza/pantry-chef/backend/internal/middleware"
)

// Dependencies are the handlers and cross-cutting components the routes need
type Dependencies struct {
	Logger          *zap.Logger
	Metrics         *metrics.Metrics
	AllowedOrigins  []string
	AuthHandler     *api.AuthHandler
	GenerateHandler *api.GenerateHandler
	RecipeHandler   *api.RecipeHandler
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger, "/health", "/metrics"),
		middleware.Metrics(deps.Metrics),
		middleware.Recovery(deps.Logger),
	)
	if len(deps.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(deps.AllowedOrigins))
	}

	router.GET("/health", api.HealthCheck)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	v := router.Group("/api")
	deps.AuthHandler.RegisterRoutes(v)
	deps.GenerateHandler.RegisterRoutes(v)
	deps.RecipeHandler.RegisterRoutes(v)

	return router
}
