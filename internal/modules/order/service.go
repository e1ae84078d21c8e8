package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/cart"
	"github.com/hamidraza-dev/bazaarline-backend/internal/pricing"
)

// CartSource reads and clears the cart being checked out. The cart service
// satisfies this.
type CartSource interface {
	Get(ctx context.Context, owner cart.Owner) (*cart.Totals, error)
	Clear(ctx context.Context, owner cart.Owner) error
}

// Publisher emits order lifecycle events for downstream consumers. Delivery
// is best-effort; a failed publish never fails the customer's request.
type Publisher interface {
	OrderPlaced(ctx context.Context, o *Order)
	StatusChanged(ctx context.Context, o *Order, previous Status)
}

// Service defines the order workflow for the storefront and the back office.
type Service interface {
	// Checkout snapshots the owner's cart into a new pending order and
	// clears the cart.
	Checkout(ctx context.Context, owner cart.Owner, req CheckoutRequest) (*Order, error)

	// GetOrder retrieves a full order by UUID.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// TrackOrder retrieves an order by number for the public tracking page.
	TrackOrder(ctx context.Context, orderNumber string) (*Order, error)

	// ListOrders pages the back office order list.
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, int, error)

	// ListUserOrders returns the signed-in customer's order history.
	ListUserOrders(ctx context.Context, userID string) ([]*Order, error)

	// UpdateStatus advances an order along the fulfillment state machine.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)

	// CancelOrder cancels a PENDING or PROCESSING order.
	CancelOrder(ctx context.Context, id string) error

	// Annotate updates the back office's mutable fields (notes, courier,
	// confirmation).
	Annotate(ctx context.Context, id string, req AnnotateRequest) (*Order, error)

	// UpdateItem edits an order line and recalculates the order total.
	UpdateItem(ctx context.Context, orderID, itemID string, req UpdateItemRequest) (*Order, error)

	// DeleteItem removes an order line and recalculates the order total.
	DeleteItem(ctx context.Context, orderID, itemID string) (*Order, error)
}

type service struct {
	repo   Repository
	carts  CartSource
	events Publisher
}

// NewService creates a new order service. events may be nil.
func NewService(repo Repository, carts CartSource, events Publisher) Service {
	return &service{repo: repo, carts: carts, events: events}
}

// validTransitions is the fulfillment state machine.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func (s *service) Checkout(ctx context.Context, owner cart.Owner, req CheckoutRequest) (*Order, error) {
	if req.CustomerName == "" || req.Phone == "" || req.Address == "" {
		return nil, fmt.Errorf("customer_name, phone and address are required")
	}

	totals, err := s.carts.Get(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(totals.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	o := &Order{
		ID:           uuid.New(),
		OrderNumber:  generateOrderNumber(),
		Status:       StatusPending,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Subtotal:     round2(totals.Subtotal),
		Shipping:     round2(totals.Shipping),
		Total:        round2(totals.Total),
		Currency:     "PKR",
	}
	if !owner.Guest {
		uid, err := uuid.Parse(owner.Key)
		if err != nil {
			return nil, fmt.Errorf("invalid user id: %w", err)
		}
		o.UserID = &uid
	}

	for _, ci := range totals.Items {
		o.Items = append(o.Items, &Item{
			ID:              uuid.New(),
			OrderID:         o.ID,
			ProductID:       ci.ProductID,
			ProductName:     ci.ProductName,
			VariationID:     ci.VariationID,
			VariationName:   ci.VariationName,
			ColorID:         ci.ColorID,
			ColorName:       ci.ColorName,
			ColorCode:       ci.ColorCode,
			ColorPrice:      ci.ColorPrice,
			VariationPrice:  ci.VariationPrice,
			Price:           ci.FinalUnitPrice,
			DiscountPercent: ci.DiscountPercent,
			Quantity:        ci.Quantity,
		})
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// Best effort; an undeliverable cart-clear leaves a stale cart, not a
	// broken order.
	_ = s.carts.Clear(ctx, owner)

	if s.events != nil {
		s.events.OrderPlaced(ctx, o)
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) TrackOrder(ctx context.Context, orderNumber string) (*Order, error) {
	return s.repo.GetOrderByNumber(ctx, orderNumber)
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, int, error) {
	if filter.Limit < 1 {
		filter.Limit = 20
	} else if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.ListOrders(ctx, filter)
}

func (s *service) ListUserOrders(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	newStatus := Status(strings.ToUpper(req.Status))
	allowed := validTransitions[o.Status]
	valid := false
	for _, st := range allowed {
		if st == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("cannot transition order from %s to %s", o.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	previous := o.Status
	o.Status = newStatus
	if s.events != nil {
		s.events.StatusChanged(ctx, o, previous)
	}
	return o, nil
}

func (s *service) CancelOrder(ctx context.Context, id string) error {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return fmt.Errorf("order not found: %w", err)
	}
	if o.Status != StatusPending && o.Status != StatusProcessing {
		return fmt.Errorf("only PENDING or PROCESSING orders can be cancelled (current: %s)", o.Status)
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return err
	}
	previous := o.Status
	o.Status = StatusCancelled
	if s.events != nil {
		s.events.StatusChanged(ctx, o, previous)
	}
	return nil
}

func (s *service) Annotate(ctx context.Context, id string, req AnnotateRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}
	if req.Courier != nil {
		o.Courier = *req.Courier
	}
	if req.Confirmed != nil {
		o.Confirmed = *req.Confirmed
	}
	if err := s.repo.UpdateAnnotations(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) UpdateItem(ctx context.Context, orderID, itemID string, req UpdateItemRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	item := findItem(o, itemID)
	if item == nil {
		return nil, fmt.Errorf("order item not found")
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return nil, fmt.Errorf("quantity must be at least 1")
		}
		item.Quantity = *req.Quantity
	}

	recalculate(o)
	if err := s.repo.UpdateItem(ctx, item, o.Subtotal, o.Total); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) DeleteItem(ctx context.Context, orderID, itemID string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if findItem(o, itemID) == nil {
		return nil, fmt.Errorf("order item not found")
	}
	kept := o.Items[:0]
	for _, it := range o.Items {
		if it.ID.String() != itemID {
			kept = append(kept, it)
		}
	}
	o.Items = kept

	recalculate(o)
	if err := s.repo.DeleteItem(ctx, orderID, itemID, o.Subtotal, o.Total); err != nil {
		return nil, err
	}
	return o, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// recalculate rebuilds the order totals from its current items. Runs on every
// back-office item edit or deletion.
func recalculate(o *Order) {
	lines := make([]pricing.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, pricing.LineItem{UnitPrice: it.Price, Quantity: it.Quantity})
	}
	o.Subtotal = round2(pricing.Subtotal(lines))
	o.Total = round2(pricing.Total(o.Subtotal, o.Shipping))
}

func findItem(o *Order, itemID string) *Item {
	for _, it := range o.Items {
		if it.ID.String() == itemID {
			return it
		}
	}
	return nil
}

// generateOrderNumber creates a human-readable order number: BZL-YYYYMMDD-XXXX
func generateOrderNumber() string {
	date := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("BZL-%s-%s", date, suffix)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
