package catalog

import "context"

// Repository defines the interface for product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)

	// List returns products, newest first, optionally filtered by exact
	// category.
	List(ctx context.Context, category string) ([]*Product, error)

	// Search returns products whose name or description contains the query,
	// case-insensitively.
	Search(ctx context.Context, query string) ([]*Product, error)

	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
