package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebook/backend/internal/api"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/metrics"
	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/service"
)

// Dependencies are the collaborators the HTTP routes need. Limiters and HTTPMetrics
// are optional.
type Dependencies struct {
	AuthService         service.IAuthService
	RecipeService       service.IRecipeService
	CreationLimiter     *middleware.RateLimiter
	ModificationLimiter *middleware.RateLimiter
	HTTPMetrics         *metrics.HTTP
	Logger              logger.Logger
	CORSOrigins         []string
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoopLogger()
	}

	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	if deps.HTTPMetrics != nil {
		router.Use(deps.HTTPMetrics.Middleware())
	}
	router.Use(middleware.CORS(deps.CORSOrigins))

	v1 := router.Group("/api/v1")

	api.NewAuthHandler(deps.AuthService, log).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthService))
	api.NewRecipeHandlerWithRateLimit(deps.RecipeService, log, deps.CreationLimiter, deps.ModificationLimiter).
		RegisterRoutes(protected)

	return router
}
