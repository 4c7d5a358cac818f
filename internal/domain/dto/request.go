// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model. Per-line business
// validation (unknown products, negative quantities) belongs to the engine;
// these types only check the shape of a body.
package dto

import "github.com/guttosm/fulfillment-service/internal/domain/model"

// DefaultMaxLineItems bounds the lines accepted in one body when no limit is configured.
const DefaultMaxLineItems = 100

// CatalogRequest is the body of PUT /api/catalog.
//
// @Description Products to register; their stock is reset to zero
// @Example {"products": [{"product_id": 0, "product_name": "RBC A+ Adult", "mass_g": 700}]}
type CatalogRequest struct {
	Products []model.Product `json:"products" binding:"required"`
} // @name CatalogRequest

// OrderRequest is the body of POST /api/orders.
//
// @Description Customer order
// @Example {"order_id": 123, "requested": [{"product_id": 0, "quantity": 6}, {"product_id": 10, "quantity": 4}]}
type OrderRequest struct {
	OrderID   int              `json:"order_id" example:"123"`
	Requested []model.LineItem `json:"requested" binding:"required"`
} // @name OrderRequest

// RestockRequest is the body of POST /api/restocks.
//
// @Description Units received into inventory
// @Example {"items": [{"product_id": 0, "quantity": 4}, {"product_id": 10, "quantity": 5}]}
type RestockRequest struct {
	Items []model.LineItem `json:"items" binding:"required"`
} // @name RestockRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// newLineCountError reports an empty or oversized list field.
func newLineCountError(field string, n, maxLines int) error {
	if maxLines <= 0 {
		maxLines = DefaultMaxLineItems
	}
	switch {
	case n == 0:
		return &ValidationError{Field: field, Message: ErrMsgEmptyLineItems}
	case n > maxLines:
		return &ValidationError{Field: field, Message: ErrMsgTooManyLineItems}
	}
	return nil
}

// Validation messages; handlers translate them by matching these values.
const (
	ErrMsgEmptyLineItems   = "must contain at least one entry"
	ErrMsgTooManyLineItems = "too many entries"
)

// Validate checks the number of products.
func (r *CatalogRequest) Validate(maxLines int) error {
	return newLineCountError("products", len(r.Products), maxLines)
}

// Validate checks the number of requested lines. An order whose lines are all
// zero is valid and processed as a no-op.
func (r *OrderRequest) Validate(maxLines int) error {
	return newLineCountError("requested", len(r.Requested), maxLines)
}

// Validate checks the number of restock lines.
func (r *RestockRequest) Validate(maxLines int) error {
	return newLineCountError("items", len(r.Items), maxLines)
}

// ToOrder converts the request to a domain order.
func (r *OrderRequest) ToOrder() model.Order {
	return model.Order{OrderID: r.OrderID, Requested: r.Requested}
}
