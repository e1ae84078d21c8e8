package order

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Order is an immutable snapshot of a cart at checkout time plus the mutable
// fulfillment state the back office manages. Item prices are captured at
// order time and never recomputed against later sales.
type Order struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"` // nil for guest checkout
	OrderNumber string     `json:"order_number"`
	Status      Status     `json:"status"`

	// Shipping / contact, captured at checkout.
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`

	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`

	// Back-office annotations.
	Notes     string `json:"notes,omitempty"`
	Courier   string `json:"courier,omitempty"`
	Confirmed bool   `json:"confirmed"`

	Items     []*Item   `json:"items,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is one order line. Variation/color name and price are part of the
// snapshot so the order renders faithfully even after the catalog changes.
type Item struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         uuid.UUID  `json:"order_id"`
	ProductID       uuid.UUID  `json:"product_id"`
	ProductName     string     `json:"product_name"`
	VariationID     *uuid.UUID `json:"variation_id,omitempty"`
	VariationName   string     `json:"variation_name,omitempty"`
	VariationPrice  float64    `json:"variation_price,omitempty"`
	ColorID         *uuid.UUID `json:"color_id,omitempty"`
	ColorName       string     `json:"color_name,omitempty"`
	ColorCode       string     `json:"color_code,omitempty"`
	ColorPrice      float64    `json:"color_price,omitempty"`
	Price           float64    `json:"price"` // resolved unit price at checkout
	DiscountPercent *int       `json:"discount_percent,omitempty"`
	Quantity        int        `json:"quantity"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CheckoutRequest is the payload for placing an order from the current cart.
type CheckoutRequest struct {
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AnnotateRequest is the payload for the back office's mutable order fields.
type AnnotateRequest struct {
	Notes     *string `json:"notes,omitempty"`
	Courier   *string `json:"courier,omitempty"`
	Confirmed *bool   `json:"confirmed,omitempty"`
}

// UpdateItemRequest edits a single order line after creation.
type UpdateItemRequest struct {
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
}

// ListFilter narrows and pages the back office order list.
type ListFilter struct {
	Status Status
	Offset int
	Limit  int
}
