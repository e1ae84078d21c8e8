// Package pricing implements the promotional price calculation used by the
// storefront and the back office: selecting the applicable sale for a product,
// resolving a line item's payable unit price, and aggregating cart totals.
//
// Everything in this package is pure. Sale records are fetched and cached by
// the caller and passed in explicitly; no function here performs I/O or reads
// shared state, so all of it is safe to call concurrently.
package pricing

import (
	"math"
	"time"
)

// Sale is a time-boxed percentage discount, either global (all products) or
// scoped to a single product.
type Sale struct {
	ID                 string    `json:"id"`
	DiscountPercentage float64   `json:"discount_percentage"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	IsActive           bool      `json:"is_active"`
	IsGlobal           bool      `json:"is_global"`
	ProductID          string    `json:"product_id,omitempty"` // empty when global
}

// Applicable reports whether the sale applies at the given instant: the active
// flag must be set and now must fall within [start_date, end_date), with the
// end date strictly in the future.
func Applicable(s Sale, now time.Time) bool {
	return s.IsActive && !now.Before(s.StartDate) && s.EndDate.After(now)
}

// Lookup selects at most one global and at most one product-specific sale for
// the given product from an already-filtered set of applicable sales. First
// match wins in both cases. Nil results are the normal "no sale running"
// state, not an error.
func Lookup(sales []Sale, productID string) (globalSale, productSale *Sale) {
	for i := range sales {
		if globalSale == nil && sales[i].IsGlobal {
			globalSale = &sales[i]
		}
		if productSale == nil && !sales[i].IsGlobal && sales[i].ProductID == productID {
			productSale = &sales[i]
		}
		if globalSale != nil && productSale != nil {
			break
		}
	}
	return globalSale, productSale
}

// Resolved is the outcome of resolving a unit price against the applicable
// sales. DiscountPercent is nil when no discount applies (including the 0%
// case, which behaves identically to no sale).
type Resolved struct {
	FinalPrice      float64 `json:"final_price"`
	DiscountPercent *int    `json:"discount_percent,omitempty"`
}

// precedence is the documented tie-break order when several sales apply:
// a product-specific sale always beats a global one.
func effectiveSale(productSale, globalSale *Sale) *Sale {
	if productSale != nil {
		return productSale
	}
	return globalSale
}

// Resolve computes the payable unit price for one line item.
//
// When applySale is false the item opts out of all sale pricing regardless of
// what is running (a variation or color with apply_sale = false). Otherwise
// the effective sale is picked by precedence (product-specific over global)
// and the price is basePrice * (1 - pct/100) at full float precision; display
// rounding is the formatting layer's job. The reported percentage is rounded
// to the nearest integer.
//
// Discount percentages are deliberately not clamped: a percentage over 100
// yields a zero or negative final price, exactly as entered. Quantity is the
// caller's concern; this function is a pure function of the unit price.
func Resolve(basePrice float64, productSale, globalSale *Sale, applySale bool) Resolved {
	if !applySale {
		return Resolved{FinalPrice: basePrice}
	}
	s := effectiveSale(productSale, globalSale)
	if s == nil || s.DiscountPercentage <= 0 {
		return Resolved{FinalPrice: basePrice}
	}
	pct := int(math.Round(s.DiscountPercentage))
	return Resolved{
		FinalPrice:      basePrice * (1 - s.DiscountPercentage/100),
		DiscountPercent: &pct,
	}
}

// UnitPrice picks the price for a line item from its selected parts: a color
// override wins when present and positive, then the variation price, then the
// product base price. Zero means "not set" for the override fields.
func UnitPrice(productPrice, variationPrice, colorPrice float64) float64 {
	if colorPrice > 0 {
		return colorPrice
	}
	if variationPrice > 0 {
		return variationPrice
	}
	return productPrice
}

// LineItem is the quantity-priced input to cart aggregation. UnitPrice is
// expected to already be resolved via Resolve.
type LineItem struct {
	UnitPrice float64
	Quantity  int
}

// Subtotal sums unit price times quantity across the items.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.UnitPrice * float64(it.Quantity)
	}
	return sum
}

// Total adds shipping to the subtotal. Shipping is kept a distinct addend
// (currently always 0 for the storefront's free-shipping policy) so the
// checkout flow does not bake it into the subtotal.
func Total(subtotal, shipping float64) float64 {
	return subtotal + shipping
}
