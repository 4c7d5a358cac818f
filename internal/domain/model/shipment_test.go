package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackage(t *testing.T) {
	pkg := Package{{ProductID: 0, Quantity: 0}, {ProductID: 10, Quantity: 4}, {ProductID: 8, Quantity: 1}}

	assert.Equal(t, 5, pkg.Units())
	assert.False(t, pkg.IsEmpty())
	assert.Equal(t, Package{{ProductID: 10, Quantity: 4}, {ProductID: 8, Quantity: 1}}, pkg.NonZero())

	empty := Package{{ProductID: 0, Quantity: 0}}
	assert.True(t, empty.IsEmpty())
	assert.Empty(t, empty.NonZero())
}

func TestLineItem_Mass(t *testing.T) {
	assert.Equal(t, 1800, LineItem{ProductID: 10, Quantity: 6}.Mass(300))
	assert.Equal(t, 0, LineItem{ProductID: 10}.Mass(300))
}
