package model

import "time"

// Package is one shipment's worth of units for a single order, in request order.
// The engine builds it dense over the requested products and ships NonZero.
type Package []LineItem

// Units returns the number of units in the package.
func (p Package) Units() int {
	units := 0
	for _, line := range p {
		units += line.Quantity
	}
	return units
}

// IsEmpty reports whether the package holds no units.
func (p Package) IsEmpty() bool {
	return p.Units() == 0
}

// NonZero returns the lines with a positive quantity.
func (p Package) NonZero() Package {
	out := make(Package, 0, len(p))
	for _, line := range p {
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	return out
}

// Shipment is the record produced when a package leaves the warehouse.
//
// @Description Shipped package for an order
// @Example {"id": "0f8fad5b-d9cb-469f-a165-70867728950e", "order_id": 123, "items": [{"product_id": 0, "quantity": 2}, {"product_id": 10, "quantity": 1}], "mass_g": 1700}
type Shipment struct {
	ID        string     `json:"id" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
	OrderID   int        `json:"order_id" example:"123"`
	Items     []LineItem `json:"items"`
	MassGrams int        `json:"mass_g" example:"1700"`
	ShippedAt time.Time  `json:"shipped_at"`
}
