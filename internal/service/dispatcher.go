package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/logger"
	"github.com/guttosm/fulfillment-service/internal/repository"
)

// DispatcherConfig holds configuration for the shipment dispatcher.
type DispatcherConfig struct {
	// BufferSize is the size of the shipment channel buffer.
	BufferSize int
	// NumWorkers is the number of worker goroutines writing shipments.
	NumWorkers int
	// WriteTimeout bounds a single database write.
	WriteTimeout time.Duration
}

// DefaultDispatcherConfig returns the default dispatcher configuration.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

// DispatcherStats reports dispatcher counters.
type DispatcherStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Errors   int64 `json:"errors"`
}

// ShipmentDispatcher persists shipment records from a bounded buffer using a
// fixed worker pool, keeping database latency off the order path.
type ShipmentDispatcher struct {
	repo         repository.ShipmentsRepositoryInterface
	shipmentCh   chan model.Shipment
	stopCh       chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
	writeTimeout time.Duration

	enqueued int64
	dropped  int64
	written  int64
	errors   int64
}

// NewShipmentDispatcher starts a dispatcher writing to repo.
// It returns nil when repo is nil.
func NewShipmentDispatcher(repo repository.ShipmentsRepositoryInterface, cfg DispatcherConfig) *ShipmentDispatcher {
	if repo == nil {
		return nil
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}
	if cfg.BufferSize < 0 {
		cfg.BufferSize = 0
	}

	d := &ShipmentDispatcher{
		repo:         repo,
		shipmentCh:   make(chan model.Shipment, cfg.BufferSize),
		stopCh:       make(chan struct{}),
		writeTimeout: cfg.WriteTimeout,
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

func (d *ShipmentDispatcher) worker() {
	defer d.wg.Done()

	for {
		select {
		case shipment := <-d.shipmentCh:
			d.write(shipment)
		case <-d.stopCh:
			for {
				select {
				case shipment := <-d.shipmentCh:
					d.write(shipment)
				default:
					return
				}
			}
		}
	}
}

func (d *ShipmentDispatcher) write(shipment model.Shipment) {
	ctx, cancel := context.WithTimeout(context.Background(), d.writeTimeout)
	defer cancel()

	if err := d.repo.Create(ctx, ShipmentToDocument(shipment)); err != nil {
		atomic.AddInt64(&d.errors, 1)
		log := logger.Logger()
		log.Warn().
			Err(err).
			Str("shipment_id", shipment.ID).
			Int("order_id", shipment.OrderID).
			Msg("Failed to persist shipment")
		return
	}
	atomic.AddInt64(&d.written, 1)
}

// Record enqueues a shipment for persistence. It returns false when the
// buffer is full or the dispatcher is stopped.
func (d *ShipmentDispatcher) Record(shipment model.Shipment) bool {
	select {
	case <-d.stopCh:
		atomic.AddInt64(&d.dropped, 1)
		return false
	default:
	}

	select {
	case d.shipmentCh <- shipment:
		atomic.AddInt64(&d.enqueued, 1)
		return true
	default:
		atomic.AddInt64(&d.dropped, 1)
		log := logger.Logger()
		log.Warn().
			Str("shipment_id", shipment.ID).
			Int("order_id", shipment.OrderID).
			Msg("Shipment buffer full, record dropped")
		return false
	}
}

// Stop drains pending shipments and waits for the workers to exit.
func (d *ShipmentDispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.stopCh)
		d.wg.Wait()
	})
}

// Stats returns current dispatcher counters.
func (d *ShipmentDispatcher) Stats() DispatcherStats {
	return DispatcherStats{
		Enqueued: atomic.LoadInt64(&d.enqueued),
		Dropped:  atomic.LoadInt64(&d.dropped),
		Written:  atomic.LoadInt64(&d.written),
		Errors:   atomic.LoadInt64(&d.errors),
	}
}
