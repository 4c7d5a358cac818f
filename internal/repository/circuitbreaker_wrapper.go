package repository

import (
	"context"
	"errors"

	"github.com/guttosm/fulfillment-service/internal/circuitbreaker"
)

// ShipmentsRepositoryWithCircuitBreaker wraps a shipments repository with circuit breaker protection.
type ShipmentsRepositoryWithCircuitBreaker struct {
	repo           ShipmentsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewShipmentsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewShipmentsRepositoryWithCircuitBreaker(repo ShipmentsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ShipmentsRepositoryWithCircuitBreaker {
	return &ShipmentsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a shipment. Shipment records are the audit trail of stock
// that left the warehouse, so an open circuit is reported to the caller.
func (r *ShipmentsRepositoryWithCircuitBreaker) Create(ctx context.Context, doc *ShipmentDocument) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, doc)
	})
}

// CreateMany stores shipments in bulk with circuit breaker protection.
func (r *ShipmentsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, docs []*ShipmentDocument) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, docs)
	})
}

// ListByOrder returns an order's shipments with circuit breaker protection.
func (r *ShipmentsRepositoryWithCircuitBreaker) ListByOrder(ctx context.Context, orderID int, limit int) ([]*ShipmentDocument, error) {
	var result []*ShipmentDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.ListByOrder(ctx, orderID, limit)
		return cbErr
	})
	return result, err
}

// CountByOrder counts an order's shipments with circuit breaker protection.
func (r *ShipmentsRepositoryWithCircuitBreaker) CountByOrder(ctx context.Context, orderID int) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.CountByOrder(ctx, orderID)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ShipmentsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps a logs repository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry. An open circuit drops the entry silently.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries. An open circuit drops the entries silently.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
