package cart

import (
	"time"

	"github.com/google/uuid"
)

// Item is one line in a cart. Product, variation and color details are
// captured at add time so the cart renders without re-joining the catalog;
// sale pricing is resolved at read time, never stored.
type Item struct {
	ID            uuid.UUID  `json:"id"`
	ProductID     uuid.UUID  `json:"product_id"`
	VariationID   *uuid.UUID `json:"variation_id,omitempty"`
	ColorID       *uuid.UUID `json:"color_id,omitempty"`
	ProductName    string  `json:"product_name"`
	VariationName  string  `json:"variation_name,omitempty"`
	VariationPrice float64 `json:"variation_price,omitempty"`
	ColorName      string  `json:"color_name,omitempty"`
	ColorCode      string  `json:"color_code,omitempty"`
	ColorPrice     float64 `json:"color_price,omitempty"`
	UnitPrice      float64 `json:"unit_price"` // pre-sale, after color/variation precedence
	ApplySale     bool       `json:"apply_sale"`
	Quantity      int        `json:"quantity"`
	AddedAt       time.Time  `json:"added_at"`
}

// sameSelection reports whether two items reference the same
// product/variation/color combination and should be merged.
func (it *Item) sameSelection(other *Item) bool {
	if it.ProductID != other.ProductID {
		return false
	}
	if !uuidPtrEqual(it.VariationID, other.VariationID) {
		return false
	}
	return uuidPtrEqual(it.ColorID, other.ColorID)
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// PricedItem is an Item with its sale-resolved price.
type PricedItem struct {
	Item
	FinalUnitPrice  float64 `json:"final_unit_price"`
	DiscountPercent *int    `json:"discount_percent,omitempty"`
	LineTotal       float64 `json:"line_total"`
}

// Totals is the aggregated view of a cart.
type Totals struct {
	Items    []PricedItem `json:"items"`
	Subtotal float64      `json:"subtotal"`
	Shipping float64      `json:"shipping"` // distinct addend, currently always 0
	Total    float64      `json:"total"`
}

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID   string `json:"product_id"`
	VariationID string `json:"variation_id,omitempty"`
	ColorID     string `json:"color_id,omitempty"`
	Quantity    int    `json:"quantity"`
}

// Owner identifies whose cart is being operated on: a signed-in user (key is
// the user id) or a guest (key is the client-held guest token).
type Owner struct {
	Key   string
	Guest bool
}

// UserOwner keys a cart by the authenticated user's id.
func UserOwner(userID string) Owner { return Owner{Key: userID} }

// GuestOwner keys a cart by the ephemeral guest token.
func GuestOwner(token string) Owner { return Owner{Key: token, Guest: true} }
