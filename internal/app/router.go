// Package app provides router configuration.
package app

import (
	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/http"
	"github.com/guttosm/fulfillment-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(services *ServiceComponents, dbComponents *DatabaseComponents, cfg config.Config) *RouterComponents {
	opts := []http.HandlerOption{http.WithMaxLineItems(cfg.Fulfillment.MaxLineItems)}
	if services.ShipmentHistory != nil {
		opts = append(opts, http.WithShipmentHistory(services.ShipmentHistory))
	}
	if services.AsyncLogger != nil {
		opts = append(opts, http.WithLogSink(services.AsyncLogger))
	}
	handler := http.NewHandler(services.Fulfillment, opts...)

	healthHandler := http.NewHealthHandler()
	if dbComponents != nil {
		healthHandler.RegisterChecker("mongodb", http.HealthCheckerFunc(dbComponents.DB.HealthCheck))
		if dbComponents.ShipmentsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_shipments", dbComponents.ShipmentsCircuitBreaker)
		}
		if dbComponents.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
		}
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		Idempotency:       middleware.DefaultIdempotencyConfig(),
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
	}
	if cfg.Server.RateLimit > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}
	if services.TokenService != nil {
		routerCfg.TokenService = services.TokenService
	}
	if services.AsyncLogger != nil {
		routerCfg.LogSink = services.AsyncLogger
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

// Stop releases the rate limiter and idempotency cache cleanup goroutines.
func (r *RouterComponents) Stop() {
	if r == nil {
		return
	}
	if r.Config.RateLimiter != nil {
		r.Config.RateLimiter.Stop()
	}
	r.Config.Idempotency.Stop()
}
