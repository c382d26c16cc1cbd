package cart

import (
	"context"

	"github.com/suplefit/storefront-api/internal/modules/catalog"
	"github.com/suplefit/storefront-api/internal/platform/apperr"
)

// Service defines cart business logic. Every mutation returns the cart
// re-fetched with products resolved.
type Service interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*Cart, error)
	Clear(ctx context.Context, userID string) (*Cart, error)
}

type service struct {
	repo     Repository
	products catalog.Repository
}

// NewService creates a new cart service.
func NewService(repo Repository, products catalog.Repository) Service {
	return &service{repo: repo, products: products}
}

func (s *service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.Validation, "quantity must be at least 1")
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddItem(ctx, c.ID.String(), productID, quantity); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to add item")
	}
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.Validation, "quantity must be at least 1")
	}

	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetItemQuantity(ctx, c.ID.String(), productID, quantity); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveItem(ctx, c.ID.String(), productID); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to remove item")
	}
	return s.repo.GetOrCreate(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Clear(ctx, c.ID.String()); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to clear cart")
	}
	return s.repo.GetOrCreate(ctx, userID)
}
