package service

import (
	"errors"
	"fmt"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

var (
	// ErrUnknownProduct is returned for a line item whose product is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrNegativeQuantity is returned for a line item with a quantity below zero.
	ErrNegativeQuantity = errors.New("negative quantity")
	// ErrQuantityOverflow is returned for a restock line that would push stock past math.MaxInt.
	ErrQuantityOverflow = errors.New("quantity overflow")
	// ErrInvalidProduct is returned for a catalog entry with a non-positive mass or a duplicate id.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrRepositoryNotConfigured is returned when persistence is disabled.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
)

// LineItemError reports a single rejected line item of a batch.
// The rest of the batch is processed normally.
type LineItemError struct {
	Index     int
	ProductID int
	Err       error
}

func (e *LineItemError) Error() string {
	return fmt.Sprintf("line %d (product %d): %v", e.Index, e.ProductID, e.Err)
}

func (e *LineItemError) Unwrap() error {
	return e.Err
}

// rejections converts line item errors into their transport representation.
func rejections(errs []error) []model.Rejected {
	if len(errs) == 0 {
		return nil
	}
	out := make([]model.Rejected, 0, len(errs))
	for _, err := range errs {
		var lineErr *LineItemError
		if errors.As(err, &lineErr) {
			out = append(out, model.Rejected{
				Index:     lineErr.Index,
				ProductID: lineErr.ProductID,
				Reason:    lineErr.Err.Error(),
			})
		}
	}
	return out
}

// Rejections extracts the rejected lines carried by an error returned from a
// Fulfiller operation. It returns nil when err carries none.
func Rejections(err error) []model.Rejected {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return rejections(joined.Unwrap())
	}
	return rejections([]error{err})
}
