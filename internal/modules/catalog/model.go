package catalog

import (
	"time"

	"github.com/google/uuid"
)

// DefaultImage is used when a product is created without an image reference.
const DefaultImage = "https://via.placeholder.com/300"

// Product is a sellable item in the catalog. Stock is decremented by the
// order workflow and never goes negative.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
