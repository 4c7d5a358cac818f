package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/i18n"
	"github.com/guttosm/fulfillment-service/internal/middleware"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// Handler provides HTTP handlers for catalog, order, restock and inventory routes.
type Handler struct {
	fulfiller    service.Fulfiller
	shipments    service.ShipmentHistory
	sink         middleware.LogSink
	maxLineItems int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithShipmentHistory enables GET /api/orders/:id/shipments.
func WithShipmentHistory(history service.ShipmentHistory) HandlerOption {
	return func(h *Handler) {
		h.shipments = history
	}
}

// WithLogSink sets the destination of audit records.
func WithLogSink(sink middleware.LogSink) HandlerOption {
	return func(h *Handler) {
		h.sink = sink
	}
}

// WithMaxLineItems bounds the lines accepted in one request body.
func WithMaxLineItems(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxLineItems = n
		}
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(fulfiller service.Fulfiller, opts ...HandlerOption) *Handler {
	h := &Handler{
		fulfiller:    fulfiller,
		maxLineItems: dto.DefaultMaxLineItems,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// InitCatalog handles PUT /api/catalog requests.
//
// @Summary      Load the product catalog
// @Description  Registers products and resets their stock to zero. Products with a non-positive mass or a repeated id are refused and listed in the response; the rest are registered.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CatalogRequest true "Products"
// @Success      200 {object} dto.SuccessResponse{data=dto.CatalogResult} "Catalog loaded"
// @Failure      400 {object} dto.ErrorResponse "Malformed body or line count out of range"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid credentials"
// @Failure      403 {object} dto.ErrorResponse "Token lacks inventory:write"
// @Failure      422 {object} dto.ErrorResponse "Every product was refused"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/catalog [put]
func (h *Handler) InitCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CatalogRequest](c, h.maxLineItems)
	if err != nil {
		builder.BadRequest(err)
		return
	}

	err = h.fulfiller.InitCatalog(c.Request.Context(), req.Products)
	rejected := service.Rejections(err)
	fields := map[string]interface{}{
		"products": len(req.Products),
		"rejected": len(rejected),
	}
	if len(rejected) == len(req.Products) {
		middleware.AuditLogError(h.sink, c, model.ActionInitCatalog, "Catalog load refused", err, fields)
		builder.ErrorWithDetails(http.StatusUnprocessableEntity, i18n.ErrKeyAllLinesRejected, err, rejectionDetails(rejected))
		return
	}
	if err != nil {
		middleware.AuditLogError(h.sink, c, model.ActionInitCatalog, "Catalog loaded with refused products", err, fields)
	} else {
		middleware.AuditLog(h.sink, c, model.ActionInitCatalog, "Catalog loaded", fields)
	}

	builder.Success(http.StatusOK, i18n.SuccessKeyCatalogInitialized, dto.CatalogResult{
		Products: h.fulfiller.Catalog(),
		Rejected: rejected,
	})
}

// GetCatalog handles GET /api/catalog requests.
//
// @Summary      List the product catalog
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.Product} "Products ordered by id"
// @Security     ApiKeyAuth
// @Router       /api/catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.fulfiller.Catalog())
}

// ProcessOrder handles POST /api/orders requests.
//
// @Summary      Process an order
// @Description  Ships as many packages as current stock allows, each within the package mass ceiling. Whatever cannot be shipped is queued and retried on the next restock. Lines naming unknown products or negative quantities are refused and listed; the rest of the order is processed.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key; a retried order with the same key ships nothing new"
// @Param        request body dto.OrderRequest true "Order"
// @Success      200 {object} dto.SuccessResponse{data=model.OrderResult} "Order processed or deferred"
// @Failure      400 {object} dto.ErrorResponse "Malformed body or line count out of range"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid credentials"
// @Failure      409 {object} dto.ErrorResponse "Same idempotency key still in flight"
// @Failure      422 {object} dto.ErrorResponse "Every line was refused"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Security     ApiKeyAuth
// @Router       /api/orders [post]
func (h *Handler) ProcessOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.OrderRequest](c, h.maxLineItems)
	if err != nil {
		builder.BadRequest(err)
		return
	}

	result, err := h.fulfiller.ProcessOrder(c.Request.Context(), req.ToOrder())
	if len(result.Rejected) == len(req.Requested) {
		middleware.AuditLogError(h.sink, c, model.ActionProcessOrder, "Order refused", err, map[string]interface{}{
			"order_id": req.OrderID,
			"rejected": len(result.Rejected),
		})
		builder.ErrorWithDetails(http.StatusUnprocessableEntity, i18n.ErrKeyAllLinesRejected, err, rejectionDetails(result.Rejected))
		return
	}

	fields := map[string]interface{}{
		"order_id": result.OrderID,
		"state":    string(result.State),
		"packages": len(result.Shipments),
		"rejected": len(result.Rejected),
	}
	if err != nil {
		middleware.AuditLogError(h.sink, c, model.ActionProcessOrder, "Order processed with refused lines", err, fields)
	} else {
		middleware.AuditLog(h.sink, c, model.ActionProcessOrder, "Order processed", fields)
	}

	messageKey := i18n.SuccessKeyOrderProcessed
	if result.Deferred() {
		messageKey = i18n.SuccessKeyOrderDeferred
	}
	builder.Success(http.StatusOK, messageKey, result)
}

// ListDeferred handles GET /api/orders/deferred requests.
//
// @Summary      List deferred orders
// @Description  Returns the order remainders waiting for a restock, oldest first.
// @Tags         Orders
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.DeferredEntry} "Deferred queue"
// @Security     ApiKeyAuth
// @Router       /api/orders/deferred [get]
func (h *Handler) ListDeferred(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.fulfiller.Deferred())
}

// ListOrderShipments handles GET /api/orders/:id/shipments requests.
//
// @Summary      List an order's shipments
// @Description  Returns persisted shipment records for an order, oldest first. Requires MongoDB.
// @Tags         Orders
// @Produce      json
// @Param        id path int true "Order id"
// @Param        limit query int false "Maximum records (default and cap 100)"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Shipment} "Shipments"
// @Failure      400 {object} dto.ErrorResponse "Malformed order id"
// @Failure      503 {object} dto.ErrorResponse "Persistence disabled or unavailable"
// @Security     ApiKeyAuth
// @Router       /api/orders/{id}/shipments [get]
func (h *Handler) ListOrderShipments(c *gin.Context) {
	builder := NewResponseBuilder(c)

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidOrderID, err)
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	if h.shipments == nil {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, service.ErrRepositoryNotConfigured)
		return
	}

	shipments, err := h.shipments.ListByOrder(c.Request.Context(), orderID, limit)
	switch {
	case errors.Is(err, service.ErrRepositoryNotConfigured), errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
		return
	case err != nil:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(shipments)
}

// ProcessRestock handles POST /api/restocks requests.
//
// @Summary      Restock inventory
// @Description  Credits stock, then retries every order that was deferred before the restock exactly once, oldest first. Orders still short go back to the end of the queue.
// @Tags         Inventory
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.RestockRequest true "Units received"
// @Success      200 {object} dto.SuccessResponse{data=model.RestockResult} "Restock processed"
// @Failure      400 {object} dto.ErrorResponse "Malformed body or line count out of range"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid credentials"
// @Failure      403 {object} dto.ErrorResponse "Token lacks inventory:write"
// @Failure      422 {object} dto.ErrorResponse "Every line was refused"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/restocks [post]
func (h *Handler) ProcessRestock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.RestockRequest](c, h.maxLineItems)
	if err != nil {
		builder.BadRequest(err)
		return
	}

	result, err := h.fulfiller.ProcessRestock(c.Request.Context(), req.Items)
	fields := map[string]interface{}{
		"credited": len(result.Credited),
		"retried":  len(result.Retried),
		"rejected": len(result.Rejected),
	}
	if len(result.Rejected) == len(req.Items) {
		middleware.AuditLogError(h.sink, c, model.ActionRestock, "Restock refused", err, fields)
		builder.ErrorWithDetails(http.StatusUnprocessableEntity, i18n.ErrKeyAllLinesRejected, err, rejectionDetails(result.Rejected))
		return
	}
	if err != nil {
		middleware.AuditLogError(h.sink, c, model.ActionRestock, "Restock processed with refused lines", err, fields)
	} else {
		middleware.AuditLog(h.sink, c, model.ActionRestock, "Restock processed", fields)
	}

	builder.Success(http.StatusOK, i18n.SuccessKeyRestockProcessed, result)
}

// GetInventory handles GET /api/inventory requests.
//
// @Summary      Inventory levels
// @Tags         Inventory
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.InventoryLevel} "Stock ordered by product id"
// @Security     ApiKeyAuth
// @Router       /api/inventory [get]
func (h *Handler) GetInventory(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.fulfiller.Inventory())
}

// rejectionDetails keys each refused line by its position in the body.
func rejectionDetails(rejected []model.Rejected) map[string]string {
	details := make(map[string]string, len(rejected))
	for _, r := range rejected {
		details["line_"+strconv.Itoa(r.Index)] = "product " + strconv.Itoa(r.ProductID) + ": " + r.Reason
	}
	return details
}
