package cart

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the single active cart owned by a user. It is created lazily and
// emptied, never deleted, after checkout.
type Cart struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Items     []*Item   `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is a line in a cart. Each product appears at most once; items keep
// their insertion order.
type Item struct {
	ProductID uuid.UUID    `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Product   *ItemProduct `json:"product"`
	AddedAt   time.Time    `json:"added_at"`
}

// ItemProduct is the catalog data resolved onto a cart line for display and
// checkout validation.
type ItemProduct struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
	Price float64   `json:"price"`
	Stock int       `json:"stock"`
}
