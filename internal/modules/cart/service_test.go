package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/catalog"
	"github.com/hamidraza-dev/bazaarline-backend/internal/pricing"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type memStore struct {
	carts map[string][]*Item
}

func newMemStore() *memStore { return &memStore{carts: map[string][]*Item{}} }

func (s *memStore) Items(ctx context.Context, key string) ([]*Item, error) {
	items := s.carts[key]
	out := make([]*Item, len(items))
	for i, it := range items {
		copied := *it
		out[i] = &copied
	}
	return out, nil
}

func (s *memStore) Save(ctx context.Context, key string, items []*Item) error {
	s.carts[key] = items
	return nil
}

func (s *memStore) Clear(ctx context.Context, key string) error {
	delete(s.carts, key)
	return nil
}

type fakeProducts struct {
	products map[string]*catalog.Product
}

func (f *fakeProducts) GetProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, assert.AnError
	}
	return p, nil
}

type fakeSales struct{ sales []pricing.Sale }

func (f *fakeSales) Applicable(ctx context.Context) ([]pricing.Sale, error) {
	return f.sales, nil
}

func applicableSale(productID string, discount float64) pricing.Sale {
	return pricing.Sale{
		ID:                 uuid.NewString(),
		DiscountPercentage: discount,
		StartDate:          time.Now().Add(-time.Hour),
		EndDate:            time.Now().Add(time.Hour),
		IsActive:           true,
		IsGlobal:           productID == "",
		ProductID:          productID,
	}
}

func testProduct() *catalog.Product {
	pid := uuid.New()
	return &catalog.Product{
		ID:            pid,
		Name:          "Lawn Suit",
		Price:         3000,
		StockQuantity: 10,
		Variations: []*catalog.Variation{
			{ID: uuid.New(), ProductID: pid, Name: "Large", Price: 3500, ApplySale: true, Quantity: 5},
			{ID: uuid.New(), ProductID: pid, Name: "Small", Price: 3200, ApplySale: false, Quantity: 0},
		},
		Colors: []*catalog.Color{
			{ID: uuid.New(), ProductID: pid, Name: "Maroon", Price: 3800, ApplySale: true, Quantity: 3},
			{ID: uuid.New(), ProductID: pid, Name: "White", Price: 0, ApplySale: false, Quantity: 4},
		},
	}
}

func newTestService(p *catalog.Product, sales ...pricing.Sale) (Service, *memStore, *memStore) {
	users := newMemStore()
	guests := newMemStore()
	products := &fakeProducts{products: map[string]*catalog.Product{p.ID.String(): p}}
	svc := NewService(users, guests, products, &fakeSales{sales: sales})
	return svc, users, guests
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestAddItemCapturesColorPricePrecedence(t *testing.T) {
	p := testProduct()
	svc, _, _ := newTestService(p)
	owner := UserOwner(uuid.NewString())

	item, err := svc.AddItem(context.Background(), owner, AddItemRequest{
		ProductID:   p.ID.String(),
		VariationID: p.Variations[0].ID.String(),
		ColorID:     p.Colors[0].ID.String(), // Maroon, override 3800
		Quantity:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3800.0, item.UnitPrice)
	assert.Equal(t, "Maroon", item.ColorName)
	assert.Equal(t, "Large", item.VariationName)
}

func TestAddItemColorWithoutOverrideFallsBackToVariation(t *testing.T) {
	p := testProduct()
	svc, _, _ := newTestService(p)
	owner := UserOwner(uuid.NewString())

	item, err := svc.AddItem(context.Background(), owner, AddItemRequest{
		ProductID:   p.ID.String(),
		VariationID: p.Variations[0].ID.String(), // Large, 3500
		ColorID:     p.Colors[1].ID.String(),     // White, no override
		Quantity:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3500.0, item.UnitPrice)
	assert.False(t, item.ApplySale, "selected color opts out of sales")
}

func TestAddItemBareProductUsesBasePrice(t *testing.T) {
	p := testProduct()
	svc, _, _ := newTestService(p)
	owner := GuestOwner("tok-123")

	item, err := svc.AddItem(context.Background(), owner, AddItemRequest{
		ProductID: p.ID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3000.0, item.UnitPrice)
	assert.True(t, item.ApplySale)
}

func TestAddItemRejectsOutOfStockVariation(t *testing.T) {
	p := testProduct()
	svc, _, _ := newTestService(p)
	owner := UserOwner(uuid.NewString())

	_, err := svc.AddItem(context.Background(), owner, AddItemRequest{
		ProductID:   p.ID.String(),
		VariationID: p.Variations[1].ID.String(), // Small, quantity 0
		Quantity:    1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of stock")
}

func TestAddItemMergesSameSelection(t *testing.T) {
	p := testProduct()
	svc, _, _ := newTestService(p)
	owner := UserOwner(uuid.NewString())

	req := AddItemRequest{ProductID: p.ID.String(), Quantity: 1}
	_, err := svc.AddItem(context.Background(), owner, req)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), owner, req)
	require.NoError(t, err)

	items, err := svc.Items(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestGetResolvesSalesAndAggregates(t *testing.T) {
	p := testProduct()
	svc, _, _ := newTestService(p, applicableSale("", 20)) // 20% global
	owner := UserOwner(uuid.NewString())

	_, err := svc.AddItem(context.Background(), owner, AddItemRequest{
		ProductID: p.ID.String(), Quantity: 2, // base 3000
	})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), owner, AddItemRequest{
		ProductID:   p.ID.String(),
		VariationID: p.Variations[0].ID.String(),
		ColorID:     p.Colors[1].ID.String(), // opts out, 3500
		Quantity:    1,
	})
	require.NoError(t, err)

	totals, err := svc.Get(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, totals.Items, 2)

	// 3000 * 0.8 * 2 + 3500 (opted out) * 1
	assert.InDelta(t, 2400.0, totals.Items[0].FinalUnitPrice, 1e-9)
	require.NotNil(t, totals.Items[0].DiscountPercent)
	assert.Equal(t, 20, *totals.Items[0].DiscountPercent)
	assert.Equal(t, 3500.0, totals.Items[1].FinalUnitPrice)
	assert.Nil(t, totals.Items[1].DiscountPercent)
	assert.InDelta(t, 8300.0, totals.Subtotal, 1e-9)
	assert.Equal(t, 0.0, totals.Shipping)
	assert.InDelta(t, 8300.0, totals.Total, 1e-9)
}

func TestGetPrefersProductSaleOverGlobal(t *testing.T) {
	p := testProduct()
	svc, _, _ := newTestService(p,
		applicableSale("", 50),             // global 50%
		applicableSale(p.ID.String(), 10)) // product-specific 10%
	owner := GuestOwner("tok-9")

	_, err := svc.AddItem(context.Background(), owner, AddItemRequest{
		ProductID: p.ID.String(), Quantity: 1,
	})
	require.NoError(t, err)

	totals, err := svc.Get(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, totals.Items, 1)
	assert.InDelta(t, 2700.0, totals.Items[0].FinalUnitPrice, 1e-9)
	require.NotNil(t, totals.Items[0].DiscountPercent)
	assert.Equal(t, 10, *totals.Items[0].DiscountPercent)
}

func TestUpdateQuantityAndRemove(t *testing.T) {
	p := testProduct()
	svc, _, _ := newTestService(p)
	owner := UserOwner(uuid.NewString())

	item, err := svc.AddItem(context.Background(), owner, AddItemRequest{
		ProductID: p.ID.String(), Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateQuantity(context.Background(), owner, item.ID.String(), 4))
	items, err := svc.Items(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	assert.Error(t, svc.UpdateQuantity(context.Background(), owner, item.ID.String(), 0))

	require.NoError(t, svc.RemoveItem(context.Background(), owner, item.ID.String()))
	items, err = svc.Items(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Error(t, svc.RemoveItem(context.Background(), owner, item.ID.String()))
}

func TestMergeGuestCartIntoUserCart(t *testing.T) {
	p := testProduct()
	svc, _, guests := newTestService(p)
	userID := uuid.NewString()

	_, err := svc.AddItem(context.Background(), GuestOwner("tok-merge"), AddItemRequest{
		ProductID: p.ID.String(), Quantity: 2,
	})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), UserOwner(userID), AddItemRequest{
		ProductID: p.ID.String(), Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.MergeGuest(context.Background(), "tok-merge", userID))

	items, err := svc.Items(context.Background(), UserOwner(userID))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Empty(t, guests.carts["tok-merge"])
}
