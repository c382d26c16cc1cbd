package order

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suplefit/storefront-api/internal/modules/cart"
	"github.com/suplefit/storefront-api/internal/platform/apperr"
)

// fixture is shared in-memory state standing in for the products, carts, and
// orders tables, so the fakes see each other's writes the way the real
// repositories do through Postgres.
type fixture struct {
	userID   uuid.UUID
	cartID   uuid.UUID
	products map[uuid.UUID]*productState
	lines    []cartLine
	orders   map[uuid.UUID]*Order
	created  []uuid.UUID // insertion order, for list sorting
}

type productState struct {
	name  string
	image string
	price float64
	stock int
}

type cartLine struct {
	productID uuid.UUID
	quantity  int
}

func newFixture() *fixture {
	return &fixture{
		userID:   uuid.New(),
		cartID:   uuid.New(),
		products: map[uuid.UUID]*productState{},
		orders:   map[uuid.UUID]*Order{},
	}
}

func (f *fixture) addProduct(name string, price float64, stock int) uuid.UUID {
	id := uuid.New()
	f.products[id] = &productState{name: name, image: "img", price: price, stock: stock}
	return id
}

func (f *fixture) addToCart(productID uuid.UUID, quantity int) {
	f.lines = append(f.lines, cartLine{productID: productID, quantity: quantity})
}

// fakeCartRepo resolves the fixture's cart lines against current product
// state, like the JOIN in the real repository.
type fakeCartRepo struct{ f *fixture }

func (r *fakeCartRepo) GetOrCreate(ctx context.Context, userID string) (*cart.Cart, error) {
	c := &cart.Cart{ID: r.f.cartID, UserID: r.f.userID, Items: []*cart.Item{}}
	for _, line := range r.f.lines {
		item := &cart.Item{ProductID: line.productID, Quantity: line.quantity}
		if p, ok := r.f.products[line.productID]; ok {
			item.Product = &cart.ItemProduct{
				ID: line.productID, Name: p.name, Image: p.image,
				Price: p.price, Stock: p.stock,
			}
		}
		c.Items = append(c.Items, item)
	}
	return c, nil
}

func (r *fakeCartRepo) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	return nil
}

func (r *fakeCartRepo) SetItemQuantity(ctx context.Context, cartID, productID string, quantity int) error {
	return nil
}

func (r *fakeCartRepo) RemoveItem(ctx context.Context, cartID, productID string) error { return nil }

func (r *fakeCartRepo) Clear(ctx context.Context, cartID string) error {
	r.f.lines = nil
	return nil
}

// fakeOrderRepo mirrors the transactional checkout: conditional decrements,
// order insert, cart clear, all or nothing.
type fakeOrderRepo struct{ f *fixture }

func (r *fakeOrderRepo) CreateFromCart(ctx context.Context, o *Order, cartID string) error {
	for _, item := range o.Items {
		p, ok := r.f.products[item.ProductID]
		if !ok || p.stock < item.Quantity {
			name := item.ProductID.String()
			if ok {
				name = p.name
			}
			return apperr.New(apperr.BusinessRule, "insufficient stock for %s", name)
		}
	}
	for _, item := range o.Items {
		r.f.products[item.ProductID].stock -= item.Quantity
	}
	stored := *o
	stored.CreatedAt = time.Now()
	r.f.orders[o.ID] = &stored
	r.f.created = append(r.f.created, o.ID)
	r.f.lines = nil
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	o, ok := r.f.orders[uid]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	return r.resolve(o), nil
}

func (r *fakeOrderRepo) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	orders := []*Order{}
	for _, id := range r.f.created {
		if o := r.f.orders[id]; o.UserID.String() == userID {
			orders = append(orders, r.resolve(o))
		}
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context) ([]*Order, error) {
	orders := []*Order{}
	for _, id := range r.f.created {
		orders = append(orders, r.resolve(r.f.orders[id]))
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.New(apperr.NotFound, "order not found")
	}
	o, ok := r.f.orders[uid]
	if !ok {
		return apperr.New(apperr.NotFound, "order not found")
	}
	o.Status = status
	return nil
}

// resolve returns a copy with product references attached, like the read-side
// JOIN. Captured prices are kept as stored.
func (r *fakeOrderRepo) resolve(o *Order) *Order {
	out := *o
	out.User = &UserSummary{ID: o.UserID, Name: "Tester", Email: "tester@example.com"}
	out.Items = make([]*Item, len(o.Items))
	for i, item := range o.Items {
		copied := *item
		if p, ok := r.f.products[item.ProductID]; ok {
			copied.Product = &ProductSummary{ID: item.ProductID, Name: p.name, Image: p.image}
		}
		out.Items[i] = &copied
	}
	return &out
}

func sortNewestFirst(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func newTestService(f *fixture) Service {
	return NewService(&fakeOrderRepo{f: f}, &fakeCartRepo{f: f})
}

func testAddress() Address {
	return Address{Street: "Rua A, 123", City: "São Paulo", State: "SP", PostalCode: "01000-000"}
}

func TestPlaceOrder_CapturesPriceAndDecrementsStock(t *testing.T) {
	f := newFixture()
	whey := f.addProduct("Whey", 100.00, 5)
	f.addToCart(whey, 2)
	svc := newTestService(f)

	o, err := svc.PlaceOrder(context.Background(), f.userID.String(), testAddress())
	require.NoError(t, err)

	assert.Equal(t, 200.00, o.TotalAmount)
	assert.Equal(t, StatusPending, o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 100.00, o.Items[0].Price)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "Whey", o.Items[0].Product.Name)

	assert.Equal(t, 3, f.products[whey].stock, "stock should drop by the ordered quantity")
	assert.Empty(t, f.lines, "cart should be emptied")
	assert.Len(t, f.orders, 1, "exactly one order should exist")
}

func TestPlaceOrder_InsufficientStockLeavesStateUntouched(t *testing.T) {
	f := newFixture()
	creatina := f.addProduct("Creatina", 50.00, 3)
	f.addToCart(creatina, 10)
	svc := newTestService(f)

	_, err := svc.PlaceOrder(context.Background(), f.userID.String(), testAddress())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.BusinessRule))
	assert.Equal(t, "insufficient stock for Creatina", apperr.MessageOf(err))

	assert.Equal(t, 3, f.products[creatina].stock, "stock must be unchanged")
	assert.Len(t, f.lines, 1, "cart must be unchanged")
	assert.Empty(t, f.orders, "no order may be created")
}

func TestPlaceOrder_FirstOffendingItemIsNamed(t *testing.T) {
	f := newFixture()
	whey := f.addProduct("Whey", 100.00, 1)
	creatina := f.addProduct("Creatina", 50.00, 0)
	f.addToCart(whey, 5)
	f.addToCart(creatina, 1)
	svc := newTestService(f)

	_, err := svc.PlaceOrder(context.Background(), f.userID.String(), testAddress())
	require.Error(t, err)
	assert.Equal(t, "insufficient stock for Whey", apperr.MessageOf(err))
	assert.Equal(t, 1, f.products[whey].stock)
	assert.Equal(t, 0, f.products[creatina].stock)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)

	_, err := svc.PlaceOrder(context.Background(), f.userID.String(), testAddress())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.BusinessRule))
	assert.Equal(t, "cart is empty", apperr.MessageOf(err))
	assert.Empty(t, f.orders)
}

func TestPlaceOrder_MultiItemTotal(t *testing.T) {
	f := newFixture()
	whey := f.addProduct("Whey", 100.00, 5)
	barra := f.addProduct("Barra de Proteína", 12.50, 20)
	f.addToCart(whey, 2)
	f.addToCart(barra, 4)
	svc := newTestService(f)

	o, err := svc.PlaceOrder(context.Background(), f.userID.String(), testAddress())
	require.NoError(t, err)

	var sum float64
	for _, item := range o.Items {
		sum += item.Price * float64(item.Quantity)
	}
	assert.Equal(t, sum, o.TotalAmount)
	assert.Equal(t, 250.00, o.TotalAmount)
	assert.Equal(t, 3, f.products[whey].stock)
	assert.Equal(t, 16, f.products[barra].stock)
}

func TestPlaceOrder_TotalSurvivesLaterPriceChange(t *testing.T) {
	f := newFixture()
	whey := f.addProduct("Whey", 100.00, 5)
	f.addToCart(whey, 2)
	svc := newTestService(f)

	placed, err := svc.PlaceOrder(context.Background(), f.userID.String(), testAddress())
	require.NoError(t, err)

	f.products[whey].price = 999.99

	orders, err := svc.ListOrders(context.Background(), f.userID.String())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.TotalAmount, orders[0].TotalAmount)
	assert.Equal(t, 100.00, orders[0].Items[0].Price, "captured price must not follow catalog edits")
}

func TestPlaceOrder_AddressValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Address)
		message string
	}{
		{"missing street", func(a *Address) { a.Street = "" }, "street is required"},
		{"missing city", func(a *Address) { a.City = " " }, "city is required"},
		{"missing state", func(a *Address) { a.State = "" }, "state is required"},
		{"missing postal code", func(a *Address) { a.PostalCode = "" }, "postal code is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.addToCart(f.addProduct("Whey", 100.00, 5), 1)
			svc := newTestService(f)

			addr := testAddress()
			tc.mutate(&addr)

			_, err := svc.PlaceOrder(context.Background(), f.userID.String(), addr)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.Validation))
			assert.Equal(t, tc.message, apperr.MessageOf(err))
			assert.Equal(t, 5, f.products[f.lines[0].productID].stock, "validation failure must not touch stock")
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	f.addToCart(f.addProduct("Whey", 100.00, 5), 1)
	svc := newTestService(f)

	placed, err := svc.PlaceOrder(context.Background(), f.userID.String(), testAddress())
	require.NoError(t, err)

	t.Run("any status may follow any other", func(t *testing.T) {
		for _, status := range []Status{StatusShipped, StatusProcessing, StatusCancelled, StatusDelivered, StatusPending} {
			o, err := svc.UpdateStatus(context.Background(), placed.ID.String(), status)
			require.NoError(t, err)
			assert.Equal(t, status, o.Status)
		}
	})

	t.Run("updated status is visible to listings", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), placed.ID.String(), StatusShipped)
		require.NoError(t, err)

		orders, err := svc.ListAllOrders(context.Background())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, StatusShipped, orders[0].Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), uuid.NewString(), StatusShipped)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.NotFound))
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), placed.ID.String(), Status("misplaced"))
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.Validation))
	})
}

func TestListOrders_NewestFirstAndIdempotent(t *testing.T) {
	f := newFixture()
	whey := f.addProduct("Whey", 100.00, 50)
	svc := newTestService(f)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		f.addToCart(whey, 1)
		o, err := svc.PlaceOrder(context.Background(), f.userID.String(), testAddress())
		require.NoError(t, err)
		ids = append(ids, o.ID)
		time.Sleep(2 * time.Millisecond)
	}

	first, err := svc.ListOrders(context.Background(), f.userID.String())
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, ids[2], first[0].ID, "newest order comes first")
	assert.Equal(t, ids[0], first[2].ID)

	second, err := svc.ListOrders(context.Background(), f.userID.String())
	require.NoError(t, err)
	assert.Equal(t, first, second, "pure reads must return identical results")
}
