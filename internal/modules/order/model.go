package order

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order. The initial state is pending;
// admins may set any status from any other, there is no enforced transition
// graph.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s is one of the enumerated order statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Address is the free-form shipping destination captured with an order.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// Order is the immutable record of a completed checkout. Only Status mutates
// after creation; items keep the unit price captured at purchase time.
type Order struct {
	ID              uuid.UUID    `json:"id"`
	UserID          uuid.UUID    `json:"user_id"`
	User            *UserSummary `json:"user,omitempty"`
	Items           []*Item      `json:"items"`
	TotalAmount     float64      `json:"totalAmount"`
	ShippingAddress Address      `json:"shippingAddress"`
	Status          Status       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
}

// Item is a line in an order. Price is the unit price at purchase time,
// independent of later catalog edits.
type Item struct {
	ProductID uuid.UUID       `json:"product_id"`
	Product   *ProductSummary `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
}

// ProductSummary is the catalog reference resolved onto an order line for
// display.
type ProductSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
}

// UserSummary is the owner reference resolved onto an order for admin views.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
