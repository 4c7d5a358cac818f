package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// ReadCatalog decodes a JSON array of products
// ({"product_id", "product_name", "mass_g"}). Unknown fields are rejected.
func ReadCatalog(r io.Reader) ([]model.Product, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var products []model.Product
	if err := dec.Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return products, nil
}

// LoadCatalogFile reads a catalog from path.
func LoadCatalogFile(path string) ([]model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return ReadCatalog(f)
}
