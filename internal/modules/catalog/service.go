package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hamidraza-dev/bazaarline-backend/internal/pricing"
)

// SaleSource supplies the currently applicable sales for price resolution.
// The sale module's cache satisfies this.
type SaleSource interface {
	Applicable(ctx context.Context) ([]pricing.Sale, error)
}

// Service defines catalog business logic for both the storefront and the
// back office.
type Service interface {
	// CreateProduct validates and persists a new product.
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)

	// GetProduct retrieves a product by UUID, undecorated (back office).
	GetProduct(ctx context.Context, id string) (*Product, error)

	// UpdateProduct applies the request onto an existing product.
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)

	// DeleteProduct removes a product with its variations and colors.
	DeleteProduct(ctx context.Context, id string) error

	// ListProducts returns undecorated products for the back office.
	ListProducts(ctx context.Context, categorySlug string) ([]*Product, error)

	// Storefront returns active products decorated with sale-resolved prices.
	Storefront(ctx context.Context, categorySlug string) ([]*StorefrontProduct, error)

	// StorefrontProduct returns one product by slug with its resolved price.
	StorefrontProduct(ctx context.Context, slug string) (*StorefrontProduct, error)

	// AddVariation, UpdateVariation, DeleteVariation manage product variations.
	AddVariation(ctx context.Context, productID string, req VariationRequest) (*Variation, error)
	UpdateVariation(ctx context.Context, id string, req VariationRequest) (*Variation, error)
	DeleteVariation(ctx context.Context, id string) error

	// AddColor, UpdateColor, DeleteColor manage product colors.
	AddColor(ctx context.Context, productID string, req ColorRequest) (*Color, error)
	UpdateColor(ctx context.Context, id string, req ColorRequest) (*Color, error)
	DeleteColor(ctx context.Context, id string) error

	// CreateCategory, ListCategories, DeleteCategory manage categories.
	CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	sales SaleSource
	now   func() time.Time
}

// NewService creates a new catalog service.
func NewService(repo Repository, sales SaleSource) Service {
	return &service{repo: repo, sales: sales, now: time.Now}
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	p := &Product{ID: uuid.New(), IsActive: true}
	if err := s.applyProductRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if err := s.applyProductRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, categorySlug string) ([]*Product, error) {
	return s.repo.ListProducts(ctx, categorySlug, false)
}

func (s *service) Storefront(ctx context.Context, categorySlug string) ([]*StorefrontProduct, error) {
	products, err := s.repo.ListProducts(ctx, categorySlug, true)
	if err != nil {
		return nil, err
	}
	sales, err := s.applicableSales(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*StorefrontProduct, 0, len(products))
	for _, p := range products {
		out = append(out, decorate(p, sales, s.now()))
	}
	return out, nil
}

func (s *service) StorefrontProduct(ctx context.Context, slug string) (*StorefrontProduct, error) {
	p, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	sales, err := s.applicableSales(ctx)
	if err != nil {
		return nil, err
	}
	return decorate(p, sales, s.now()), nil
}

func (s *service) applicableSales(ctx context.Context) ([]pricing.Sale, error) {
	if s.sales == nil {
		return nil, nil
	}
	return s.sales.Applicable(ctx)
}

// decorate resolves the product's display price against the applicable
// sales. The repository query already filters on activity and dates, but the
// cache may be up to its staleness window behind, so applicability is checked
// again at resolution time.
func decorate(p *Product, sales []pricing.Sale, now time.Time) *StorefrontProduct {
	applicable := sales[:0:0]
	for _, s := range sales {
		if pricing.Applicable(s, now) {
			applicable = append(applicable, s)
		}
	}
	globalSale, productSale := pricing.Lookup(applicable, p.ID.String())
	resolved := pricing.Resolve(p.Price, productSale, globalSale, true)
	return &StorefrontProduct{
		Product: *p,
		DisplayPrice: DisplayPrice{
			Original:        p.Price,
			Final:           resolved.FinalPrice,
			DiscountPercent: resolved.DiscountPercent,
		},
	}
}

func (s *service) applyProductRequest(p *Product, req ProductRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	p.Name = req.Name
	p.Slug = req.Slug
	p.Description = req.Description
	p.Price = float64(req.Price)
	p.StockQuantity = req.StockQuantity
	p.ImageURL = req.ImageURL
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.CategoryID = nil
	if req.CategoryID != "" {
		cid, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return fmt.Errorf("invalid category_id: %w", err)
		}
		p.CategoryID = &cid
	}
	return nil
}

// ── variations ───────────────────────────────────────────────────────────────

func (s *service) AddVariation(ctx context.Context, productID string, req VariationRequest) (*Variation, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	v := &Variation{ID: uuid.New(), ProductID: pid}
	applyVariationRequest(v, req)
	if err := s.repo.CreateVariation(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) UpdateVariation(ctx context.Context, id string, req VariationRequest) (*Variation, error) {
	v, err := s.repo.GetVariation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("variation not found: %w", err)
	}
	applyVariationRequest(v, req)
	if err := s.repo.UpdateVariation(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) DeleteVariation(ctx context.Context, id string) error {
	return s.repo.DeleteVariation(ctx, id)
}

func applyVariationRequest(v *Variation, req VariationRequest) {
	v.Name = req.Name
	v.Price = float64(req.Price)
	v.Quantity = req.Quantity
	v.ApplySale = true
	if req.ApplySale != nil {
		v.ApplySale = *req.ApplySale
	}
}

// ── colors ───────────────────────────────────────────────────────────────────

func (s *service) AddColor(ctx context.Context, productID string, req ColorRequest) (*Color, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	c := &Color{ID: uuid.New(), ProductID: pid}
	applyColorRequest(c, req)
	if err := s.repo.CreateColor(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateColor(ctx context.Context, id string, req ColorRequest) (*Color, error) {
	c, err := s.repo.GetColor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("color not found: %w", err)
	}
	applyColorRequest(c, req)
	if err := s.repo.UpdateColor(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteColor(ctx context.Context, id string) error {
	return s.repo.DeleteColor(ctx, id)
}

func applyColorRequest(c *Color, req ColorRequest) {
	c.Name = req.Name
	c.Code = req.Code
	c.Price = float64(req.Price)
	c.Quantity = req.Quantity
	c.ApplySale = true
	if req.ApplySale != nil {
		c.ApplySale = *req.ApplySale
	}
}

// ── categories ───────────────────────────────────────────────────────────────

func (s *service) CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error) {
	if req.Name == "" || req.Slug == "" {
		return nil, fmt.Errorf("name and slug are required")
	}
	c := &Category{ID: uuid.New(), Name: req.Name, Slug: req.Slug, ImageURL: req.ImageURL}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}
