package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/suplefit/storefront-api/internal/platform/apperr"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, category string) ([]*Product, error)
	SearchProducts(ctx context.Context, query string) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// ProductRequest holds the data for creating or updating a product.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
}

func (req ProductRequest) validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return apperr.New(apperr.Validation, "product name is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperr.New(apperr.Validation, "product description is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return apperr.New(apperr.Validation, "product category is required")
	}
	if req.Price < 0 {
		return apperr.New(apperr.Validation, "price must not be negative")
	}
	if req.Stock < 0 {
		return apperr.New(apperr.Validation, "stock must not be negative")
	}
	return nil
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	image := req.Image
	if image == "" {
		image = DefaultImage
	}
	p := &Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Image:       image,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    strings.TrimSpace(req.Category),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to create product")
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.List(ctx, category)
}

func (s *service) SearchProducts(ctx context.Context, query string) ([]*Product, error) {
	if strings.TrimSpace(query) == "" {
		return s.repo.List(ctx, "")
	}
	return s.repo.Search(ctx, query)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	if req.Image != "" {
		p.Image = req.Image
	}
	p.Price = req.Price
	p.Stock = req.Stock
	p.Category = strings.TrimSpace(req.Category)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
