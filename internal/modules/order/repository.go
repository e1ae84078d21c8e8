package order

import "context"

// Repository defines data access for orders.
type Repository interface {
	// CreateOrder persists a new order and its items atomically.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its items by UUID.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// GetOrderByNumber retrieves an order by its human-readable number.
	GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error)

	// ListOrders returns orders for the back office, newest first, with the
	// total count before paging.
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, int, error)

	// ListOrdersByUser returns all orders placed by a user, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error)

	// UpdateStatus advances an order to a new status.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// UpdateAnnotations persists the back office's mutable fields.
	UpdateAnnotations(ctx context.Context, o *Order) error

	// UpdateItem persists an edited order line and the recalculated totals
	// in one transaction.
	UpdateItem(ctx context.Context, it *Item, subtotal, total float64) error

	// DeleteItem removes an order line and persists the recalculated totals
	// in one transaction.
	DeleteItem(ctx context.Context, orderID, itemID string, subtotal, total float64) error
}
