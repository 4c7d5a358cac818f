package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/metrics"
	"github.com/guttosm/fulfillment-service/internal/middleware"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit  int
	RateWindow time.Duration
	// RateLimiter is used instead of building one from RateLimit, so the
	// caller can stop it on shutdown.
	RateLimiter *middleware.ShardedRateLimiter
	APIKeys     map[string]bool
	EnableAuth  bool
	// TokenService, when set, additionally guards catalog and restock writes
	// with a bearer token carrying inventory:write.
	TokenService      service.TokenService
	EnableIdempotency bool
	Idempotency       middleware.IdempotencyConfig
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	LogSink           middleware.LogSink
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
		EnableAuth: false,
	}
}

// apiKeyAuthEnabled reports whether the /api group is gated by API keys.
func (cfg *RouterConfig) apiKeyAuthEnabled() bool {
	return cfg.EnableAuth && len(cfg.APIKeys) > 0
}

// NewRouter creates and configures the Gin router for the fulfillment service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	if cfg.RateLimiter == nil && cfg.RateLimit > 0 {
		cfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	if cfg.EnableIdempotency && cfg.Idempotency.Cache == nil {
		cfg.Idempotency = middleware.DefaultIdempotencyConfig()
	}
	if handler != nil {
		NewFulfillmentRoutes(handler).RegisterRoutes(api, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LogSink),
		middleware.ErrorHandler(),
	)

	// Without credentials every caller is anonymous, so limit by IP here.
	// With API keys the /api group limits per actor instead.
	if cfg.RateLimiter != nil && !cfg.apiKeyAuthEnabled() {
		router.Use(cfg.RateLimiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.apiKeyAuthEnabled() {
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
		if cfg.RateLimiter != nil {
			api.Use(cfg.RateLimiter.ActorRateLimit())
		}
	}
}
