// Package app provides service initialization.
package app

import (
	"context"
	"fmt"

	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/middleware"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Fulfillment     *service.FulfillmentService
	Packer          *service.Packer
	Dispatcher      *service.ShipmentDispatcher
	ShipmentHistory service.ShipmentHistory
	TokenService    service.TokenService
	AsyncLogger     *middleware.AsyncLogger
}

// InitializeServices builds the fulfillment engine and its collaborators.
// Persistence-backed parts are only created when db is non-nil. A configured
// catalog file is loaded before the engine is returned.
func InitializeServices(cfg config.Config, db *DatabaseComponents) (*ServiceComponents, error) {
	var packerOpts []service.PackerOption
	if cfg.Cache.Size > 0 {
		packerOpts = append(packerOpts, service.WithSearchCache(cfg.Cache.Size, cfg.Cache.TTL))
	}
	packer := service.NewPacker(cfg.Fulfillment.CapacityGrams, packerOpts...)

	components := &ServiceComponents{Packer: packer}
	opts := []service.Option{service.WithPacker(packer)}

	if db != nil {
		components.Dispatcher = service.NewShipmentDispatcher(db.ShipmentsRepo, service.DispatcherConfig{
			BufferSize:   cfg.Shipping.BufferSize,
			NumWorkers:   cfg.Shipping.Workers,
			WriteTimeout: cfg.Shipping.WriteTimeout,
		})
		components.ShipmentHistory = service.NewShipmentHistoryService(db.ShipmentsRepo)
		components.AsyncLogger = middleware.NewAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())
		opts = append(opts, service.WithRecorder(components.Dispatcher))
	}

	components.Fulfillment = service.NewFulfillmentService(opts...)

	if cfg.Auth.JWTSecretKey != "" {
		tokens, err := service.NewTokenService(service.NewTokenConfigFromAuthConfig(cfg.Auth))
		if err != nil {
			components.Stop()
			return nil, fmt.Errorf("token service: %w", err)
		}
		components.TokenService = tokens
	}

	if cfg.Fulfillment.CatalogFile != "" {
		if err := seedCatalog(components.Fulfillment, cfg.Fulfillment.CatalogFile); err != nil {
			components.Stop()
			return nil, err
		}
	}

	log.Info().
		Int("capacity_g", packer.Capacity()).
		Bool("persistence", db != nil).
		Bool("token_auth", components.TokenService != nil).
		Msg("Services initialized")

	return components, nil
}

// seedCatalog loads products from path. Refused products are logged and the
// rest are registered.
func seedCatalog(svc *service.FulfillmentService, path string) error {
	products, err := service.LoadCatalogFile(path)
	if err != nil {
		return fmt.Errorf("catalog file: %w", err)
	}

	if err := svc.InitCatalog(context.Background(), products); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Catalog file contains refused products")
	}
	log.Info().Str("path", path).Int("products", len(svc.Catalog())).Msg("Catalog loaded from file")
	return nil
}

// Stop drains the shipment dispatcher and the async logger and stops the
// packer memo cleanup.
func (s *ServiceComponents) Stop() {
	if s == nil {
		return
	}
	if s.Dispatcher != nil {
		s.Dispatcher.Stop()
	}
	if s.AsyncLogger != nil {
		s.AsyncLogger.Stop()
	}
	if s.Packer != nil {
		s.Packer.Stop()
	}
}
