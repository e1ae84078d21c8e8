package order

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/cart"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type memRepo struct {
	orders map[string]*Order
}

func newMemRepo() *memRepo { return &memRepo{orders: map[string]*Order{}} }

func (r *memRepo) CreateOrder(ctx context.Context, o *Order) error {
	copied := *o
	r.orders[o.ID.String()] = &copied
	return nil
}

func (r *memRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	copied := *o
	copied.Items = make([]*Item, len(o.Items))
	for i, it := range o.Items {
		itemCopy := *it
		copied.Items[i] = &itemCopy
	}
	return &copied, nil
}

func (r *memRepo) GetOrderByNumber(ctx context.Context, number string) (*Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == number {
			return r.GetOrderByID(ctx, o.ID.String())
		}
	}
	return nil, fmt.Errorf("no rows")
}

func (r *memRepo) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, int, error) {
	var out []*Order
	for _, o := range r.orders {
		if filter.Status == "" || o.Status == filter.Status {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

func (r *memRepo) ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error) {
	var out []*Order
	for _, o := range r.orders {
		if o.UserID != nil && o.UserID.String() == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("no rows")
	}
	o.Status = status
	return nil
}

func (r *memRepo) UpdateAnnotations(ctx context.Context, o *Order) error {
	stored, ok := r.orders[o.ID.String()]
	if !ok {
		return fmt.Errorf("no rows")
	}
	stored.Notes, stored.Courier, stored.Confirmed = o.Notes, o.Courier, o.Confirmed
	return nil
}

func (r *memRepo) UpdateItem(ctx context.Context, it *Item, subtotal, total float64) error {
	o, ok := r.orders[it.OrderID.String()]
	if !ok {
		return fmt.Errorf("no rows")
	}
	for _, stored := range o.Items {
		if stored.ID == it.ID {
			stored.Price, stored.Quantity = it.Price, it.Quantity
		}
	}
	o.Subtotal, o.Total = subtotal, total
	return nil
}

func (r *memRepo) DeleteItem(ctx context.Context, orderID, itemID string, subtotal, total float64) error {
	o, ok := r.orders[orderID]
	if !ok {
		return fmt.Errorf("no rows")
	}
	kept := o.Items[:0]
	for _, it := range o.Items {
		if it.ID.String() != itemID {
			kept = append(kept, it)
		}
	}
	o.Items = kept
	o.Subtotal, o.Total = subtotal, total
	return nil
}

type fakeCarts struct {
	totals  *cart.Totals
	cleared bool
}

func (f *fakeCarts) Get(ctx context.Context, owner cart.Owner) (*cart.Totals, error) {
	return f.totals, nil
}

func (f *fakeCarts) Clear(ctx context.Context, owner cart.Owner) error {
	f.cleared = true
	return nil
}

type recordingPublisher struct {
	placed  []string
	changed []string
}

func (p *recordingPublisher) OrderPlaced(ctx context.Context, o *Order) {
	p.placed = append(p.placed, o.OrderNumber)
}

func (p *recordingPublisher) StatusChanged(ctx context.Context, o *Order, previous Status) {
	p.changed = append(p.changed, fmt.Sprintf("%s->%s", previous, o.Status))
}

func testCartTotals() *cart.Totals {
	ten := 10
	return &cart.Totals{
		Items: []cart.PricedItem{
			{
				Item: cart.Item{
					ID:          uuid.New(),
					ProductID:   uuid.New(),
					ProductName: "Lawn Suit",
					UnitPrice:   3000,
					ApplySale:   true,
					Quantity:    2,
				},
				FinalUnitPrice:  2700,
				DiscountPercent: &ten,
				LineTotal:       5400,
			},
			{
				Item: cart.Item{
					ID:          uuid.New(),
					ProductID:   uuid.New(),
					ProductName: "Khussa",
					UnitPrice:   1500,
					ApplySale:   false,
					Quantity:    1,
				},
				FinalUnitPrice: 1500,
				LineTotal:      1500,
			},
		},
		Subtotal: 6900,
		Shipping: 0,
		Total:    6900,
	}
}

func checkoutReq() CheckoutRequest {
	return CheckoutRequest{
		CustomerName: "Ayesha Khan",
		Email:        "ayesha@example.com",
		Phone:        "+92 300 1234567",
		Address:      "House 12, Street 4",
		City:         "Lahore",
	}
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestCheckoutSnapshotsCartAndClearsIt(t *testing.T) {
	repo := newMemRepo()
	carts := &fakeCarts{totals: testCartTotals()}
	events := &recordingPublisher{}
	svc := NewService(repo, carts, events)

	userID := uuid.New()
	o, err := svc.Checkout(context.Background(), cart.UserOwner(userID.String()), checkoutReq())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "PKR", o.Currency)
	require.NotNil(t, o.UserID)
	assert.Equal(t, userID, *o.UserID)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 2700.0, o.Items[0].Price)
	require.NotNil(t, o.Items[0].DiscountPercent)
	assert.Equal(t, 10, *o.Items[0].DiscountPercent)
	assert.Equal(t, 6900.0, o.Subtotal)
	assert.Equal(t, 0.0, o.Shipping)
	assert.Equal(t, 6900.0, o.Total)
	assert.True(t, carts.cleared)
	assert.Equal(t, []string{o.OrderNumber}, events.placed)
	assert.Contains(t, o.OrderNumber, "BZL-")
}

func TestCheckoutGuestOrderHasNoUser(t *testing.T) {
	svc := NewService(newMemRepo(), &fakeCarts{totals: testCartTotals()}, nil)

	o, err := svc.Checkout(context.Background(), cart.GuestOwner("tok-1"), checkoutReq())
	require.NoError(t, err)
	assert.Nil(t, o.UserID)
}

func TestCheckoutRejectsEmptyCartAndMissingContact(t *testing.T) {
	svc := NewService(newMemRepo(), &fakeCarts{totals: &cart.Totals{}}, nil)

	_, err := svc.Checkout(context.Background(), cart.GuestOwner("tok-1"), checkoutReq())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")

	_, err = svc.Checkout(context.Background(), cart.GuestOwner("tok-1"), CheckoutRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestStatusMachine(t *testing.T) {
	repo := newMemRepo()
	events := &recordingPublisher{}
	svc := NewService(repo, &fakeCarts{totals: testCartTotals()}, events)

	o, err := svc.Checkout(context.Background(), cart.GuestOwner("tok-1"), checkoutReq())
	require.NoError(t, err)
	id := o.ID.String()

	// pending -> shipped skips processing and must fail.
	_, err = svc.UpdateStatus(context.Background(), id, UpdateStatusRequest{Status: "shipped"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")

	for _, status := range []string{"processing", "shipped", "delivered"} {
		o, err = svc.UpdateStatus(context.Background(), id, UpdateStatusRequest{Status: status})
		require.NoError(t, err)
	}
	assert.Equal(t, StatusDelivered, o.Status)
	assert.Equal(t, []string{
		"PENDING->PROCESSING",
		"PROCESSING->SHIPPED",
		"SHIPPED->DELIVERED",
	}, events.changed)

	// Delivered is terminal.
	_, err = svc.UpdateStatus(context.Background(), id, UpdateStatusRequest{Status: "pending"})
	assert.Error(t, err)
}

func TestCancelOnlyEarlyStatuses(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &fakeCarts{totals: testCartTotals()}, nil)

	o, err := svc.Checkout(context.Background(), cart.GuestOwner("tok-1"), checkoutReq())
	require.NoError(t, err)
	id := o.ID.String()

	require.NoError(t, svc.CancelOrder(context.Background(), id))
	stored, err := svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, stored.Status)

	// A delivered order cannot be cancelled.
	o2, err := svc.Checkout(context.Background(), cart.GuestOwner("tok-2"), checkoutReq())
	require.NoError(t, err)
	for _, status := range []string{"processing", "shipped", "delivered"} {
		_, err = svc.UpdateStatus(context.Background(), o2.ID.String(), UpdateStatusRequest{Status: status})
		require.NoError(t, err)
	}
	err = svc.CancelOrder(context.Background(), o2.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only PENDING or PROCESSING")
}

func TestUpdateItemRecalculatesTotal(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &fakeCarts{totals: testCartTotals()}, nil)

	o, err := svc.Checkout(context.Background(), cart.GuestOwner("tok-1"), checkoutReq())
	require.NoError(t, err)

	// Bump the second line from qty 1 to 3: 2700*2 + 1500*3 = 9900.
	three := 3
	updated, err := svc.UpdateItem(context.Background(), o.ID.String(), o.Items[1].ID.String(),
		UpdateItemRequest{Quantity: &three})
	require.NoError(t, err)
	assert.Equal(t, 9900.0, updated.Subtotal)
	assert.Equal(t, 9900.0, updated.Total)

	// Re-price the first line: 2000*2 + 1500*3 = 8500.
	price := 2000.0
	updated, err = svc.UpdateItem(context.Background(), o.ID.String(), o.Items[0].ID.String(),
		UpdateItemRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 8500.0, updated.Subtotal)

	stored, err := svc.GetOrder(context.Background(), o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 8500.0, stored.Total)
}

func TestDeleteItemRecalculatesTotal(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &fakeCarts{totals: testCartTotals()}, nil)

	o, err := svc.Checkout(context.Background(), cart.GuestOwner("tok-1"), checkoutReq())
	require.NoError(t, err)

	updated, err := svc.DeleteItem(context.Background(), o.ID.String(), o.Items[1].ID.String())
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 5400.0, updated.Subtotal)
	assert.Equal(t, 5400.0, updated.Total)

	_, err = svc.DeleteItem(context.Background(), o.ID.String(), o.Items[1].ID.String())
	assert.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &fakeCarts{totals: testCartTotals()}, nil)

	o, err := svc.Checkout(context.Background(), cart.GuestOwner("tok-1"), checkoutReq())
	require.NoError(t, err)

	notes := "call before delivery"
	courier := "TCS"
	confirmed := true
	updated, err := svc.Annotate(context.Background(), o.ID.String(), AnnotateRequest{
		Notes: &notes, Courier: &courier, Confirmed: &confirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, "call before delivery", updated.Notes)
	assert.Equal(t, "TCS", updated.Courier)
	assert.True(t, updated.Confirmed)

	// Partial update leaves the rest untouched.
	newCourier := "Leopards"
	updated, err = svc.Annotate(context.Background(), o.ID.String(), AnnotateRequest{Courier: &newCourier})
	require.NoError(t, err)
	assert.Equal(t, "call before delivery", updated.Notes)
	assert.Equal(t, "Leopards", updated.Courier)
	assert.True(t, updated.Confirmed)
}
