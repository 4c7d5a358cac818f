package service

import (
	"math"
	"testing"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	c.Put(model.Product{ID: 3, Name: "PLT O+", MassGrams: 80})
	c.Put(model.Product{ID: 1, Name: "FFP A+", MassGrams: 300})
	c.Put(model.Product{ID: 3, Name: "PLT O+", MassGrams: 90})

	p, ok := c.Get(3)
	assert.True(t, ok)
	assert.Equal(t, 90, p.MassGrams)

	_, ok = c.Get(2)
	assert.False(t, ok)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []int{1, 3}, []int{c.Snapshot()[0].ID, c.Snapshot()[1].ID})
}

func TestInventory(t *testing.T) {
	tests := []struct {
		name     string
		run      func(inv *Inventory)
		expected []model.InventoryLevel
	}{
		{
			name:     "reset creates zero entry",
			run:      func(inv *Inventory) { inv.Reset(4) },
			expected: []model.InventoryLevel{{ProductID: 4, Quantity: 0}},
		},
		{
			name: "credit accumulates",
			run: func(inv *Inventory) {
				inv.Credit(2, 3)
				inv.Credit(2, 4)
			},
			expected: []model.InventoryLevel{{ProductID: 2, Quantity: 7}},
		},
		{
			name: "debit subtracts",
			run: func(inv *Inventory) {
				inv.Credit(1, 5)
				inv.Debit(1, 5)
				inv.Credit(0, 1)
			},
			expected: []model.InventoryLevel{{ProductID: 0, Quantity: 1}, {ProductID: 1, Quantity: 0}},
		},
		{
			name: "reset clears stock",
			run: func(inv *Inventory) {
				inv.Credit(1, 5)
				inv.Reset(1)
			},
			expected: []model.InventoryLevel{{ProductID: 1, Quantity: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInventory()
			tt.run(inv)
			assert.Equal(t, tt.expected, inv.Snapshot())
		})
	}
}

func TestInventory_DebitBeyondStockPanics(t *testing.T) {
	inv := NewInventory()
	inv.Credit(1, 2)

	assert.Panics(t, func() { inv.Debit(1, 3) })
	assert.Equal(t, 2, inv.Quantity(1))
}

func TestInventory_CreditOverflowPanics(t *testing.T) {
	inv := NewInventory()
	inv.Credit(1, math.MaxInt)

	assert.Panics(t, func() { inv.Credit(1, 1) })
	assert.Equal(t, math.MaxInt, inv.Quantity(1))
}
