package service

import (
	"errors"
	"testing"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/mocks"
	"github.com/guttosm/fulfillment-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testShipment(id string) model.Shipment {
	return model.Shipment{
		ID:        id,
		OrderID:   42,
		Items:     []model.LineItem{{ProductID: 1, Quantity: 3}},
		MassGrams: 900,
		ShippedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewShipmentDispatcher_NilRepository(t *testing.T) {
	assert.Nil(t, NewShipmentDispatcher(nil, DefaultDispatcherConfig()))
}

func TestDefaultDispatcherConfig(t *testing.T) {
	cfg := DefaultDispatcherConfig()

	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 4, cfg.NumWorkers)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestShipmentDispatcher_WritesShipments(t *testing.T) {
	repo := &mocks.MockShipmentsRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(doc *repository.ShipmentDocument) bool {
		return doc.ShipmentID == "s-1" && doc.OrderID == 42 && doc.MassGrams == 900 && len(doc.Items) == 1
	})).Return(nil).Once()

	d := NewShipmentDispatcher(repo, DispatcherConfig{BufferSize: 10, NumWorkers: 2, WriteTimeout: time.Second})
	require.NotNil(t, d)

	assert.True(t, d.Record(testShipment("s-1")))
	d.Stop()

	stats := d.Stats()
	assert.Equal(t, int64(1), stats.Enqueued)
	assert.Equal(t, int64(1), stats.Written)
	assert.Zero(t, stats.Errors)
	repo.AssertExpectations(t)
}

func TestShipmentDispatcher_CountsWriteErrors(t *testing.T) {
	repo := &mocks.MockShipmentsRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("write failed"))

	d := NewShipmentDispatcher(repo, DispatcherConfig{BufferSize: 10, NumWorkers: 1, WriteTimeout: time.Second})
	d.Record(testShipment("a"))
	d.Record(testShipment("b"))
	d.Stop()

	stats := d.Stats()
	assert.Equal(t, int64(2), stats.Errors)
	assert.Zero(t, stats.Written)
}

func TestShipmentDispatcher_DropsWhenFull(t *testing.T) {
	block := make(chan time.Time)
	repo := &mocks.MockShipmentsRepository{}
	repo.On("Create", mock.Anything, mock.Anything).
		WaitUntil(block).
		Return(nil)

	d := NewShipmentDispatcher(repo, DispatcherConfig{BufferSize: 1, NumWorkers: 1, WriteTimeout: time.Second})

	accepted := 0
	for i := 0; i < 10; i++ {
		if d.Record(testShipment("x")) {
			accepted++
		}
	}
	close(block)
	d.Stop()

	stats := d.Stats()
	assert.LessOrEqual(t, accepted, 2)
	assert.Equal(t, int64(10-accepted), stats.Dropped)
	assert.Equal(t, int64(accepted), stats.Written)
}

func TestShipmentDispatcher_RecordAfterStop(t *testing.T) {
	repo := &mocks.MockShipmentsRepository{}
	d := NewShipmentDispatcher(repo, DispatcherConfig{BufferSize: 5, NumWorkers: 1, WriteTimeout: time.Second})
	d.Stop()
	d.Stop()

	assert.False(t, d.Record(testShipment("late")))
	assert.Equal(t, int64(1), d.Stats().Dropped)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestShipmentDispatcher_DefaultsInvalidConfig(t *testing.T) {
	repo := &mocks.MockShipmentsRepository{}

	d := NewShipmentDispatcher(repo, DispatcherConfig{BufferSize: -1, NumWorkers: 0, WriteTimeout: time.Second})
	require.NotNil(t, d)
	d.Stop()

	assert.Equal(t, int64(0), d.Stats().Written)
}
