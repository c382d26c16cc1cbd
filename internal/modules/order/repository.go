package order

import "context"

// Repository defines data access for orders.
type Repository interface {
	// CreateFromCart persists the order and its items, decrements product
	// stock, and empties the cart, all inside a single transaction. The stock
	// decrement is conditional (stock >= quantity); a failed condition rolls
	// everything back and surfaces as an insufficient-stock error.
	CreateFromCart(ctx context.Context, o *Order, cartID string) error

	// GetByID retrieves an order with its items and product references
	// resolved.
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListByUser returns a user's orders, newest first, products resolved.
	ListByUser(ctx context.Context, userID string) ([]*Order, error)

	// ListAll returns every order, newest first, with user and product
	// references resolved.
	ListAll(ctx context.Context) ([]*Order, error)

	// UpdateStatus sets an order's status. Fails with NotFound for unknown
	// ids.
	UpdateStatus(ctx context.Context, id string, status Status) error
}
