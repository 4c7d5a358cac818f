package service

import (
	"math"
	"sort"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// Catalog maps product ids to their immutable attributes.
type Catalog struct {
	products map[int]model.Product
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{products: make(map[int]model.Product)}
}

// Put adds or replaces a product.
func (c *Catalog) Put(p model.Product) {
	c.products[p.ID] = p
}

// Get returns the product with the given id.
func (c *Catalog) Get(id int) (model.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Snapshot returns every product ordered by id.
func (c *Catalog) Snapshot() []model.Product {
	out := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Inventory tracks on-hand quantities. Quantities never go below zero.
type Inventory struct {
	levels map[int]int
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{levels: make(map[int]int)}
}

// Reset sets the product's quantity to zero, creating the entry if needed.
func (inv *Inventory) Reset(productID int) {
	inv.levels[productID] = 0
}

// Quantity returns the on-hand quantity of a product.
func (inv *Inventory) Quantity(productID int) int {
	return inv.levels[productID]
}

// Credit adds quantity to a product. Callers reject credits that would exceed
// math.MaxInt; it panics if one gets through.
func (inv *Inventory) Credit(productID, quantity int) {
	if quantity > math.MaxInt-inv.levels[productID] {
		panic("inventory: credit overflows on-hand quantity")
	}
	inv.levels[productID] += quantity
}

// Debit removes quantity that was proven available at allocation time.
// It panics if the debit would drive stock negative, which can only happen
// through a broken allocation.
func (inv *Inventory) Debit(productID, quantity int) {
	if inv.levels[productID] < quantity {
		panic("inventory: debit exceeds on-hand quantity")
	}
	inv.levels[productID] -= quantity
}

// Snapshot returns every inventory level ordered by product id.
func (inv *Inventory) Snapshot() []model.InventoryLevel {
	out := make([]model.InventoryLevel, 0, len(inv.levels))
	for id, qty := range inv.levels {
		out = append(out, model.InventoryLevel{ProductID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
