package sale

import (
	"time"

	"github.com/google/uuid"

	"github.com/hamidraza-dev/bazaarline-backend/internal/pricing"
)

// Sale is an administrator-defined, time-boxed percentage discount. It is
// either global (applies to every product) or scoped to a single product.
type Sale struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name,omitempty"`
	DiscountPercentage float64    `json:"discount_percentage"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            time.Time  `json:"end_date"`
	IsActive           bool       `json:"is_active"`
	IsGlobal           bool       `json:"is_global"`
	ProductID          *uuid.UUID `json:"product_id,omitempty"` // nil when global
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Pricing converts the record into the pricing package's input shape.
func (s *Sale) Pricing() pricing.Sale {
	p := pricing.Sale{
		ID:                 s.ID.String(),
		DiscountPercentage: s.DiscountPercentage,
		StartDate:          s.StartDate,
		EndDate:            s.EndDate,
		IsActive:           s.IsActive,
		IsGlobal:           s.IsGlobal,
	}
	if s.ProductID != nil {
		p.ProductID = s.ProductID.String()
	}
	return p
}

// SaleRequest is the payload for creating or updating a sale.
type SaleRequest struct {
	Name               string    `json:"name"`
	DiscountPercentage float64   `json:"discount_percentage"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	IsActive           bool      `json:"is_active"`
	IsGlobal           bool      `json:"is_global"`
	ProductID          string    `json:"product_id,omitempty"`
}
