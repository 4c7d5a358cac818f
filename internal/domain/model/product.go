// Package model defines the core domain entities for the fulfillment service.
package model

// Product is an immutable catalog entry.
//
// @Description Catalog product with its unit mass in grams
// @Example {"product_id": 0, "product_name": "RBC A+ Adult", "mass_g": 700}
type Product struct {
	// ID uniquely identifies the product for the lifetime of the process
	ID int `json:"product_id" example:"0"`
	// Name is the human readable product name
	Name string `json:"product_name" example:"RBC A+ Adult"`
	// MassGrams is the mass of a single unit
	MassGrams int `json:"mass_g" example:"700"`
}

// InventoryLevel is the on-hand quantity of one catalog product.
//
// @Description On-hand stock for a product
// @Example {"product_id": 0, "quantity": 4}
type InventoryLevel struct {
	ProductID int `json:"product_id" example:"0"`
	Quantity  int `json:"quantity" example:"4"`
}

// LineItem pairs a product with a quantity. It is used for order lines,
// restock entries and package contents.
//
// @Description Product id and quantity
// @Example {"product_id": 10, "quantity": 4}
type LineItem struct {
	ProductID int `json:"product_id" example:"10"`
	Quantity  int `json:"quantity" example:"4"`
}

// Mass returns the total mass of the line given the unit mass.
func (l LineItem) Mass(unitMass int) int {
	return l.Quantity * unitMass
}
