// Package main is the entry point for the fulfillment-service application.
//
// @title           Fulfillment Service API
// @version         1.0.0
// @description     Inventory-aware order fulfillment.
//
//	Orders are packed into mass-limited packages from on-hand stock. Whatever
//	cannot ship is deferred and retried when inventory is restocked.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/fulfillment-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>" carrying the inventory:write scope. Required for catalog and restock writes when JWT_SECRET_KEY is set.
//
// @tag.name        Catalog
// @tag.description Product catalog management
//
// @tag.name        Orders
// @tag.description Order processing and the deferred queue
//
// @tag.name        Inventory
// @tag.description Stock levels and restocks
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	_ "github.com/guttosm/fulfillment-service/docs" // swagger docs

	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(application.Router, cfg.Server.Port)
	server.OnShutdown(func(ctx context.Context) { application.Close(ctx) })

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
