package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suplefit/storefront-api/internal/platform/apperr"
)

// memoryRepo keeps products in insertion order, newest first on reads.
type memoryRepo struct {
	products []*Product
}

func (r *memoryRepo) Create(ctx context.Context, p *Product) error {
	r.products = append([]*Product{p}, r.products...)
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	for _, p := range r.products {
		if p.ID == pid {
			return p, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "product not found")
}

func (r *memoryRepo) List(ctx context.Context, category string) ([]*Product, error) {
	out := []*Product{}
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) Search(ctx context.Context, query string) ([]*Product, error) {
	q := strings.ToLower(query)
	out := []*Product{}
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, p *Product) error {
	for i, existing := range r.products {
		if existing.ID == p.ID {
			r.products[i] = p
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "product not found")
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return apperr.New(apperr.NotFound, "product not found")
	}
	for i, p := range r.products {
		if p.ID == pid {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "product not found")
}

func validRequest() ProductRequest {
	return ProductRequest{
		Name:        "Whey Protein",
		Description: "Whey concentrado 900g",
		Price:       100.00,
		Stock:       5,
		Category:    "proteinas",
	}
}

func TestCreateProduct(t *testing.T) {
	svc := NewService(&memoryRepo{})

	p, err := svc.CreateProduct(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "Whey Protein", p.Name)
	assert.Equal(t, DefaultImage, p.Image, "image defaults to the placeholder")
	assert.Equal(t, 5, p.Stock)
}

func TestCreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductRequest)
	}{
		{"missing name", func(r *ProductRequest) { r.Name = " " }},
		{"missing description", func(r *ProductRequest) { r.Description = "" }},
		{"missing category", func(r *ProductRequest) { r.Category = "" }},
		{"negative price", func(r *ProductRequest) { r.Price = -1 }},
		{"negative stock", func(r *ProductRequest) { r.Stock = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(&memoryRepo{})
			req := validRequest()
			tc.mutate(&req)

			_, err := svc.CreateProduct(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.Validation))
		})
	}
}

func TestListProducts_CategoryFilter(t *testing.T) {
	svc := NewService(&memoryRepo{})

	req := validRequest()
	_, err := svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Creatina"
	req.Category = "aminoacidos"
	_, err = svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)

	all, err := svc.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListProducts(context.Background(), "proteinas")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Whey Protein", filtered[0].Name)
}

func TestSearchProducts(t *testing.T) {
	svc := NewService(&memoryRepo{})

	req := validRequest()
	_, err := svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Creatina"
	req.Description = "Creatina monohidratada"
	_, err = svc.CreateProduct(context.Background(), req)
	require.NoError(t, err)

	t.Run("matches name substring", func(t *testing.T) {
		found, err := svc.SearchProducts(context.Background(), "creat")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Creatina", found[0].Name)
	})

	t.Run("matches description substring", func(t *testing.T) {
		found, err := svc.SearchProducts(context.Background(), "900g")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Whey Protein", found[0].Name)
	})

	t.Run("blank query lists everything", func(t *testing.T) {
		found, err := svc.SearchProducts(context.Background(), "  ")
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})
}

func TestUpdateProduct(t *testing.T) {
	svc := NewService(&memoryRepo{})
	p, err := svc.CreateProduct(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Price = 120.00
	req.Stock = 3
	updated, err := svc.UpdateProduct(context.Background(), p.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, 120.00, updated.Price)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, DefaultImage, updated.Image, "blank image leaves the existing one")

	_, err = svc.UpdateProduct(context.Background(), uuid.NewString(), req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteProduct(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	p, err := svc.CreateProduct(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), p.ID.String()))
	assert.Empty(t, repo.products)

	err = svc.DeleteProduct(context.Background(), p.ID.String())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
