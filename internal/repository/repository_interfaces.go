package repository

import (
	"context"
)

// ShipmentsRepositoryInterface defines the interface for shipment storage.
type ShipmentsRepositoryInterface interface {
	Create(ctx context.Context, doc *ShipmentDocument) error
	CreateMany(ctx context.Context, docs []*ShipmentDocument) error
	ListByOrder(ctx context.Context, orderID int, limit int) ([]*ShipmentDocument, error)
	CountByOrder(ctx context.Context, orderID int) (int64, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

var (
	_ ShipmentsRepositoryInterface = (*ShipmentsRepository)(nil)
	_ ShipmentsRepositoryInterface = (*ShipmentsRepositoryWithCircuitBreaker)(nil)
	_ LogsRepositoryInterface      = (*LogsRepository)(nil)
	_ LogsRepositoryInterface      = (*LogsRepositoryWithCircuitBreaker)(nil)
)
