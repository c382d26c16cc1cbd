package order

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/suplefit/storefront-api/internal/modules/cart"
	"github.com/suplefit/storefront-api/internal/platform/apperr"
)

// Service defines the order management business logic.
type Service interface {
	// PlaceOrder converts the user's cart into an immutable order: it
	// validates stock against every line, captures current unit prices,
	// decrements stock, and empties the cart.
	PlaceOrder(ctx context.Context, userID string, address Address) (*Order, error)

	// ListOrders returns the user's own orders, newest first.
	ListOrders(ctx context.Context, userID string) ([]*Order, error)

	// ListAllOrders returns every order across all users, newest first.
	ListAllOrders(ctx context.Context) ([]*Order, error)

	// UpdateStatus sets an order's status to any enumerated value.
	UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error)
}

type service struct {
	repo  Repository
	carts cart.Repository
}

// NewService creates a new order service.
func NewService(repo Repository, carts cart.Repository) Service {
	return &service{repo: repo, carts: carts}
}

func (s *service) PlaceOrder(ctx context.Context, userID string, address Address) (*Order, error) {
	if err := validateAddress(address); err != nil {
		return nil, err
	}

	c, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, apperr.New(apperr.BusinessRule, "cart is empty")
	}

	// All-or-nothing validation pass before any write. The first line whose
	// quantity exceeds current stock fails the whole checkout.
	var total float64
	items := make([]*Item, 0, len(c.Items))
	for _, line := range c.Items {
		if line.Product == nil {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		if line.Quantity > line.Product.Stock {
			return nil, apperr.New(apperr.BusinessRule, "insufficient stock for %s", line.Product.Name)
		}
		total += line.Product.Price * float64(line.Quantity)
		items = append(items, &Item{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	o := &Order{
		ID:              uuid.New(),
		UserID:          c.UserID,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: address,
		Status:          StatusPending,
	}

	// Decrements, order insert, and cart clear commit or roll back together.
	if err := s.repo.CreateFromCart(ctx, o, c.ID.String()); err != nil {
		return nil, err
	}

	// Re-read so the response carries resolved user and product references.
	return s.repo.GetByID(ctx, o.ID.String())
}

func (s *service) ListOrders(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListAllOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	status = Status(strings.ToLower(string(status)))
	if !ValidStatus(status) {
		return nil, apperr.New(apperr.Validation, "invalid status %q", status)
	}
	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, orderID)
}

func validateAddress(a Address) error {
	switch {
	case strings.TrimSpace(a.Street) == "":
		return apperr.New(apperr.Validation, "street is required")
	case strings.TrimSpace(a.City) == "":
		return apperr.New(apperr.Validation, "city is required")
	case strings.TrimSpace(a.State) == "":
		return apperr.New(apperr.Validation, "state is required")
	case strings.TrimSpace(a.PostalCode) == "":
		return apperr.New(apperr.Validation, "postal code is required")
	}
	return nil
}
