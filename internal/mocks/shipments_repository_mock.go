// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockShipmentsRepository struct {
	mock.Mock
}

func (m *MockShipmentsRepository) Create(ctx context.Context, doc *repository.ShipmentDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockShipmentsRepository) CreateMany(ctx context.Context, docs []*repository.ShipmentDocument) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *MockShipmentsRepository) ListByOrder(ctx context.Context, orderID int, limit int) ([]*repository.ShipmentDocument, error) {
	args := m.Called(ctx, orderID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.ShipmentDocument), args.Error(1)
}

func (m *MockShipmentsRepository) CountByOrder(ctx context.Context, orderID int) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}
