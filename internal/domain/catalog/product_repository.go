package catalog

import (
	"context"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindAll returns every product ordered by ID ascending
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Create stores a new product and assigns its ID
	Create(ctx context.Context, fields ProductFields) (*Product, error)

	// Update overwrites the fields of an existing product.
	// Returns shared.ErrNotFound if the product does not exist.
	Update(ctx context.Context, id int64, fields ProductFields) (*Product, error)

	// Delete removes a product.
	// Returns shared.ErrNotFound if the product does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored products
	Count(ctx context.Context) (int64, error)
}
