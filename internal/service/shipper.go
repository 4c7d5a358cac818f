package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/logger"
)

// Shipper sends one package for an order and returns its shipment record.
// It is called while the engine lock is held, so implementations must not
// call back into the FulfillmentService. MassGrams is stamped by the caller.
type Shipper interface {
	Ship(ctx context.Context, orderID int, pkg model.Package) (model.Shipment, error)
}

// ShipperFunc adapts a function to the Shipper interface.
type ShipperFunc func(ctx context.Context, orderID int, pkg model.Package) (model.Shipment, error)

// Ship calls f.
func (f ShipperFunc) Ship(ctx context.Context, orderID int, pkg model.Package) (model.Shipment, error) {
	return f(ctx, orderID, pkg)
}

// ShipmentRecorder receives every shipment after it leaves the warehouse.
// Record must not block; it reports whether the shipment was accepted.
type ShipmentRecorder interface {
	Record(shipment model.Shipment) bool
}

// LogShipper is the default Shipper. It assigns a shipment id and writes the
// package to the structured log.
type LogShipper struct {
	now func() time.Time
}

// NewLogShipper creates a LogShipper.
func NewLogShipper() *LogShipper {
	return &LogShipper{now: time.Now}
}

// Ship logs the package and returns its record.
func (s *LogShipper) Ship(_ context.Context, orderID int, pkg model.Package) (model.Shipment, error) {
	shipment := model.Shipment{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Items:     append([]model.LineItem(nil), pkg...),
		ShippedAt: s.now().UTC(),
	}

	log := logger.Logger()
	log.Info().
		Str("shipment_id", shipment.ID).
		Int("order_id", orderID).
		Int("units", pkg.Units()).
		Interface("items", shipment.Items).
		Msg("Package shipped")

	return shipment, nil
}
