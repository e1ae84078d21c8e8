package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Price is a monetary amount that tolerates being sent as either a JSON
// number or a numeric string. Legacy admin clients send price fields both
// ways, so the value is normalized exactly once here at the request boundary
// and is a plain float64 everywhere past it.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*p = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", s, err)
		}
		*p = Price(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// Category groups products for storefront navigation.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a storefront product with its base price and stock.
type Product struct {
	ID            uuid.UUID    `json:"id"`
	CategoryID    *uuid.UUID   `json:"category_id,omitempty"`
	Name          string       `json:"name"`
	Slug          string       `json:"slug"`
	Description   string       `json:"description,omitempty"`
	Price         float64      `json:"price"`
	StockQuantity int          `json:"stock_quantity"`
	ImageURL      string       `json:"image_url,omitempty"`
	IsActive      bool         `json:"is_active"`
	Variations    []*Variation `json:"variations,omitempty"`
	Colors        []*Color     `json:"colors,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Variation is a product sub-selection (size, finish) with its own price,
// stock and sale opt-out flag.
type Variation struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ApplySale bool      `json:"apply_sale"`
	Quantity  int       `json:"quantity"`
}

// Color is a product colour option. Price 0 means "no override": the line
// item falls back to the variation price, then the product base price.
type Color struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"` // hex code for the swatch
	Price     float64   `json:"price,omitempty"`
	ApplySale bool      `json:"apply_sale"`
	Quantity  int       `json:"quantity"`
}

// DisplayPrice is a sale-resolved price attached to storefront responses.
type DisplayPrice struct {
	Original        float64 `json:"original"`
	Final           float64 `json:"final"`
	DiscountPercent *int    `json:"discount_percent,omitempty"`
}

// StorefrontProduct is a product decorated with its resolved display price.
type StorefrontProduct struct {
	Product
	DisplayPrice DisplayPrice `json:"display_price"`
}

// ── request payloads ─────────────────────────────────────────────────────────

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	CategoryID    string `json:"category_id,omitempty"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description"`
	Price         Price  `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	ImageURL      string `json:"image_url"`
	IsActive      *bool  `json:"is_active,omitempty"`
}

// VariationRequest is the payload for adding or updating a variation.
type VariationRequest struct {
	Name      string `json:"name"`
	Price     Price  `json:"price"`
	ApplySale *bool  `json:"apply_sale,omitempty"` // defaults to true
	Quantity  int    `json:"quantity"`
}

// ColorRequest is the payload for adding or updating a color.
type ColorRequest struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Price     Price  `json:"price"` // 0 keeps the fallback behaviour
	ApplySale *bool  `json:"apply_sale,omitempty"`
	Quantity  int    `json:"quantity"`
}

// CategoryRequest is the payload for creating or updating a category.
type CategoryRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url"`
}
