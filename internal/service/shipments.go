package service

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/repository"
)

// DefaultShipmentListLimit caps shipment history queries.
const DefaultShipmentListLimit = 100

// ShipmentHistory reads persisted shipment records.
type ShipmentHistory interface {
	ListByOrder(ctx context.Context, orderID int, limit int) ([]model.Shipment, error)
}

// ShipmentHistoryService implements ShipmentHistory on a shipments repository.
type ShipmentHistoryService struct {
	repo repository.ShipmentsRepositoryInterface
}

// NewShipmentHistoryService creates a ShipmentHistoryService. A nil repo
// yields a service that reports ErrRepositoryNotConfigured.
func NewShipmentHistoryService(repo repository.ShipmentsRepositoryInterface) *ShipmentHistoryService {
	return &ShipmentHistoryService{repo: repo}
}

// ListByOrder returns an order's shipments, oldest first.
func (s *ShipmentHistoryService) ListByOrder(ctx context.Context, orderID int, limit int) ([]model.Shipment, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if limit <= 0 || limit > DefaultShipmentListLimit {
		limit = DefaultShipmentListLimit
	}

	docs, err := s.repo.ListByOrder(ctx, orderID, limit)
	if err != nil {
		return nil, err
	}

	shipments := make([]model.Shipment, len(docs))
	for i, doc := range docs {
		shipments[i] = ShipmentFromDocument(doc)
	}
	return shipments, nil
}

// ShipmentToDocument converts a shipment record to its storage form.
func ShipmentToDocument(shipment model.Shipment) *repository.ShipmentDocument {
	items := make([]repository.ShipmentItemDocument, len(shipment.Items))
	for i, item := range shipment.Items {
		items[i] = repository.ShipmentItemDocument{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	return &repository.ShipmentDocument{
		ShipmentID: shipment.ID,
		OrderID:    shipment.OrderID,
		Items:      items,
		MassGrams:  shipment.MassGrams,
		ShippedAt:  shipment.ShippedAt,
	}
}

// ShipmentFromDocument converts a stored shipment back to a record.
func ShipmentFromDocument(doc *repository.ShipmentDocument) model.Shipment {
	items := make([]model.LineItem, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = model.LineItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	return model.Shipment{
		ID:        doc.ShipmentID,
		OrderID:   doc.OrderID,
		Items:     items,
		MassGrams: doc.MassGrams,
		ShippedAt: doc.ShippedAt,
	}
}
