package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/middleware"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// FulfillmentRoutes registers the catalog, order, restock and inventory routes.
type FulfillmentRoutes struct {
	handler *Handler
}

var _ RouteGroup = (*FulfillmentRoutes)(nil)

// NewFulfillmentRoutes creates a new FulfillmentRoutes instance.
func NewFulfillmentRoutes(handler *Handler) *FulfillmentRoutes {
	return &FulfillmentRoutes{handler: handler}
}

// RegisterRoutes registers every route. Catalog and restock writes require a
// token with inventory:write when cfg.TokenService is set; orders only need
// whatever the group itself requires.
func (r *FulfillmentRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.GET("/catalog", r.handler.GetCatalog)
	rg.GET("/inventory", r.handler.GetInventory)
	rg.GET("/orders/deferred", r.handler.ListDeferred)
	rg.GET("/orders/:id/shipments", r.handler.ListOrderShipments)

	rg.POST("/orders", r.writeChain(cfg, false, r.handler.ProcessOrder)...)
	rg.PUT("/catalog", r.writeChain(cfg, true, r.handler.InitCatalog)...)
	rg.POST("/restocks", r.writeChain(cfg, true, r.handler.ProcessRestock)...)
}

// writeChain puts token auth ahead of idempotency so a replay never bypasses
// the scope check.
func (r *FulfillmentRoutes) writeChain(cfg *RouterConfig, inventoryWrite bool, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, 3)
	if inventoryWrite && cfg.TokenService != nil {
		chain = append(chain, middleware.JWTAuth(cfg.TokenService, service.ScopeInventoryWrite))
	}
	if cfg.EnableIdempotency {
		chain = append(chain, middleware.Idempotency(cfg.Idempotency))
	}
	return append(chain, handler)
}
