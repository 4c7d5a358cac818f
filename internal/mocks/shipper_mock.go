// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockShipper struct {
	mock.Mock
}

func (m *MockShipper) Ship(ctx context.Context, orderID int, pkg model.Package) (model.Shipment, error) {
	args := m.Called(ctx, orderID, pkg)
	return args.Get(0).(model.Shipment), args.Error(1)
}

type MockShipmentRecorder struct {
	mock.Mock
}

func (m *MockShipmentRecorder) Record(shipment model.Shipment) bool {
	args := m.Called(shipment)
	return args.Bool(0)
}
