// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockShipmentHistory struct {
	mock.Mock
}

func (m *MockShipmentHistory) ListByOrder(ctx context.Context, orderID int, limit int) ([]model.Shipment, error) {
	args := m.Called(ctx, orderID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Shipment), args.Error(1)
}
