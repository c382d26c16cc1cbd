package cart

import "context"

// Repository defines data access for carts. Reads always return the cart with
// catalog data resolved onto every line.
type Repository interface {
	// GetOrCreate returns the user's cart, creating an empty one on first use.
	GetOrCreate(ctx context.Context, userID string) (*Cart, error)

	// AddItem appends a line, or increments the quantity when the product is
	// already in the cart.
	AddItem(ctx context.Context, cartID, productID string, quantity int) error

	// SetItemQuantity replaces a line's quantity. Fails with NotFound when the
	// product is not in the cart.
	SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error

	// RemoveItem deletes a line. Removing an absent product is a no-op.
	RemoveItem(ctx context.Context, cartID, productID string) error

	// Clear removes every line; the cart row itself persists.
	Clear(ctx context.Context, cartID string) error
}
