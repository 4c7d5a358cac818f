package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/logger"
	"github.com/guttosm/fulfillment-service/internal/metrics"
)

// Fulfiller is the order fulfillment engine.
type Fulfiller interface {
	// InitCatalog registers products and resets their stock to zero.
	InitCatalog(ctx context.Context, products []model.Product) error
	// ProcessOrder ships as much of an order as stock allows and defers the rest.
	ProcessOrder(ctx context.Context, order model.Order) (*model.OrderResult, error)
	// ProcessRestock credits stock and retries every deferred order once.
	ProcessRestock(ctx context.Context, items []model.LineItem) (*model.RestockResult, error)
	// Inventory returns the on-hand quantity of every known product.
	Inventory() []model.InventoryLevel
	// Deferred returns the deferred queue, oldest first.
	Deferred() []model.DeferredEntry
	// Catalog returns every registered product.
	Catalog() []model.Product
}

// Operation labels for rejection metrics.
const (
	operationCatalog = "catalog"
	operationOrder   = "order"
	operationRestock = "restock"
)

// Option configures a FulfillmentService.
type Option func(*FulfillmentService)

// FulfillmentService implements Fulfiller. Every public operation holds one
// mutex for its whole duration, so the service can be shared by handlers.
type FulfillmentService struct {
	mu        sync.Mutex
	catalog   *Catalog
	inventory *Inventory
	deferred  *DeferredQueue
	packer    *Packer
	shipper   Shipper
	recorder  ShipmentRecorder
	now       func() time.Time
}

var _ Fulfiller = (*FulfillmentService)(nil)

// NewFulfillmentService creates an engine with an empty catalog.
func NewFulfillmentService(opts ...Option) *FulfillmentService {
	s := &FulfillmentService{
		catalog:   NewCatalog(),
		inventory: NewInventory(),
		deferred:  NewDeferredQueue(),
		packer:    NewPacker(DefaultCapacityGrams),
		shipper:   NewLogShipper(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPacker sets the allocation search, including its capacity.
func WithPacker(p *Packer) Option {
	return func(s *FulfillmentService) {
		if p != nil {
			s.packer = p
		}
	}
}

// WithCapacity sets the package mass ceiling in grams.
func WithCapacity(grams int) Option {
	return func(s *FulfillmentService) {
		s.packer = NewPacker(grams)
	}
}

// WithShipper sets the shipping collaborator.
func WithShipper(shipper Shipper) Option {
	return func(s *FulfillmentService) {
		if shipper != nil {
			s.shipper = shipper
		}
	}
}

// WithRecorder forwards every shipment to r, e.g. a ShipmentDispatcher.
func WithRecorder(r ShipmentRecorder) Option {
	return func(s *FulfillmentService) {
		s.recorder = r
	}
}

// Capacity returns the package mass ceiling in grams.
func (s *FulfillmentService) Capacity() int {
	return s.packer.Capacity()
}

// InitCatalog upserts products and resets their inventory to zero. Products
// with a non-positive mass or an id repeated within the call are rejected and
// the rest are registered. Products absent from the call and the deferred
// queue are left as they are.
func (s *FulfillmentService) InitCatalog(_ context.Context, products []model.Product) error {
	var errs []error
	accepted := make([]model.Product, 0, len(products))
	seen := make(map[int]struct{}, len(products))
	for i, p := range products {
		if _, dup := seen[p.ID]; dup || p.MassGrams <= 0 {
			errs = append(errs, &LineItemError{Index: i, ProductID: p.ID, Err: ErrInvalidProduct})
			metrics.RecordRejectedLineItem(operationCatalog, ErrInvalidProduct.Error())
			continue
		}
		seen[p.ID] = struct{}{}
		accepted = append(accepted, p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range accepted {
		s.catalog.Put(p)
		s.inventory.Reset(p.ID)
	}
	s.packer.InvalidateCache()

	log := logger.Logger()
	log.Info().
		Int("products", len(accepted)).
		Int("rejected", len(errs)).
		Int("catalog_size", s.catalog.Len()).
		Msg("Catalog initialized")

	return errors.Join(errs...)
}

// ProcessOrder runs the order through the packing loop. Rejected line items
// are reported in the returned error and in the result; the remaining lines
// are processed normally. Any quantity left unshipped is queued for retry.
func (s *FulfillmentService) ProcessOrder(ctx context.Context, order model.Order) (*model.OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, errs := s.validate(operationOrder, order.Requested)
	request := model.NewRequest(lines)

	result := s.fulfil(ctx, order.OrderID, request)
	if result.Deferred() {
		s.deferred.Push(model.DeferredEntry{OrderID: order.OrderID, Remaining: request.Clone()})
		metrics.SetDeferredQueueSize(s.deferred.Len())

		log := logger.Logger()
		log.Info().
			Int("order_id", order.OrderID).
			Int("remaining_units", request.Total()).
			Int("queue_size", s.deferred.Len()).
			Msg("Order deferred")
	}

	result.Rejected = rejections(errs)
	return result, errors.Join(errs...)
}

// ProcessRestock credits inventory and then retries each order that was in
// the deferred queue when the drain started, exactly once and oldest first.
func (s *FulfillmentService) ProcessRestock(ctx context.Context, items []model.LineItem) (*model.RestockResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, errs := s.validate(operationRestock, items)
	for _, line := range lines {
		s.inventory.Credit(line.ProductID, line.Quantity)
	}
	metrics.RecordRestock()

	result := &model.RestockResult{
		Credited: lines,
		Retried:  make([]model.OrderResult, 0, s.deferred.Len()),
		Rejected: rejections(errs),
	}

	s.deferred.Drain(func(entry model.DeferredEntry) model.Request {
		remaining := entry.Remaining.Clone()
		retried := s.fulfil(ctx, entry.OrderID, remaining)
		result.Retried = append(result.Retried, *retried)
		return remaining
	})
	metrics.SetDeferredQueueSize(s.deferred.Len())

	log := logger.Logger()
	log.Info().
		Int("credited_lines", len(lines)).
		Int("retried_orders", len(result.Retried)).
		Int("queue_size", s.deferred.Len()).
		Msg("Restock processed")

	return result, errors.Join(errs...)
}

// Inventory returns a snapshot of stock levels ordered by product id.
func (s *FulfillmentService) Inventory() []model.InventoryLevel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.Snapshot()
}

// Deferred returns a snapshot of the deferred queue, oldest first.
func (s *FulfillmentService) Deferred() []model.DeferredEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deferred.Snapshot()
}

// Catalog returns a snapshot of the catalog ordered by product id.
func (s *FulfillmentService) Catalog() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Snapshot()
}

// validate splits line items into accepted lines and per-line errors. For
// restocks it also refuses a line whose credit, added to current stock and
// to earlier accepted lines of the same product, would overflow.
// Must be called with mu held.
func (s *FulfillmentService) validate(operation string, items []model.LineItem) ([]model.LineItem, []error) {
	var errs []error
	accepted := make([]model.LineItem, 0, len(items))
	pending := make(map[int]int)
	for i, item := range items {
		var err error
		switch {
		case item.Quantity < 0:
			err = ErrNegativeQuantity
		default:
			if _, ok := s.catalog.Get(item.ProductID); !ok {
				err = ErrUnknownProduct
			} else if operation == operationRestock &&
				item.Quantity > math.MaxInt-s.inventory.Quantity(item.ProductID)-pending[item.ProductID] {
				err = ErrQuantityOverflow
			}
		}
		if err != nil {
			errs = append(errs, &LineItemError{Index: i, ProductID: item.ProductID, Err: err})
			metrics.RecordRejectedLineItem(operation, err.Error())
			continue
		}
		if operation == operationRestock {
			pending[item.ProductID] += item.Quantity
		}
		accepted = append(accepted, item)
	}
	return accepted, errs
}

// fulfil ships packages for request until no unit fits, decrementing request
// in place. Must be called with mu held.
func (s *FulfillmentService) fulfil(ctx context.Context, orderID int, request model.Request) *model.OrderResult {
	masses := make([]int, len(request))
	for i, line := range request {
		p, _ := s.catalog.Get(line.ProductID)
		masses[i] = p.MassGrams
	}

	result := &model.OrderResult{OrderID: orderID, State: model.OrderStateActive, Shipments: []model.Shipment{}}
	limits := make([]int, len(request))
	for {
		for i, line := range request {
			limits[i] = max(0, min(line.Quantity, s.inventory.Quantity(line.ProductID)))
		}

		counts := s.packer.Pack(masses, limits)
		dense := make(model.Package, len(counts))
		mass := 0
		for i, n := range counts {
			dense[i] = model.LineItem{ProductID: request[i].ProductID, Quantity: n}
			mass += dense[i].Mass(masses[i])
		}
		if dense.IsEmpty() {
			break
		}

		result.Shipments = append(result.Shipments, s.ship(ctx, orderID, dense.NonZero(), mass))
		for i, line := range dense {
			if line.Quantity > 0 {
				s.inventory.Debit(line.ProductID, line.Quantity)
				request[i].Quantity -= line.Quantity
			}
		}
		result.State = model.OrderStatePartiallyShipped
	}

	result.Remaining = request.Clone()
	if request.IsSatisfied() {
		result.State = model.OrderStateComplete
	} else {
		result.State = model.OrderStateDeferred
	}
	metrics.RecordOrderProcessed(string(result.State))

	return result
}

// ship hands the package to the shipper. A failed shipment is logged and the
// package still counts as shipped.
func (s *FulfillmentService) ship(ctx context.Context, orderID int, pkg model.Package, mass int) model.Shipment {
	shipment, err := s.shipper.Ship(ctx, orderID, pkg)
	if err != nil {
		log := logger.Logger()
		log.Error().
			Err(err).
			Int("order_id", orderID).
			Int("mass_g", mass).
			Msg("Shipper failed, package counted as shipped")
		metrics.RecordPackageShipped(mass, "error")

		shipment = model.Shipment{
			OrderID:   orderID,
			Items:     pkg,
			ShippedAt: s.now().UTC(),
		}
	} else {
		metrics.RecordPackageShipped(mass, "success")
	}
	shipment.MassGrams = mass

	log := logger.Logger()
	log.Debug().
		Int("order_id", orderID).
		Str("shipment_id", shipment.ID).
		Int("units", pkg.Units()).
		Int("mass_g", mass).
		Msg("Package packed")

	if s.recorder != nil && shipment.ID != "" {
		s.recorder.Record(shipment)
	}
	return shipment
}
