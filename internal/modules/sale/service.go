package sale

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines sale management business logic.
type Service interface {
	// CreateSale validates and persists a new sale, invalidating the cache.
	CreateSale(ctx context.Context, req SaleRequest) (*Sale, error)

	// GetSale retrieves a sale by UUID.
	GetSale(ctx context.Context, id string) (*Sale, error)

	// ListSales returns every sale for the back office, newest first.
	ListSales(ctx context.Context) ([]*Sale, error)

	// UpdateSale applies the request to an existing sale, invalidating the cache.
	UpdateSale(ctx context.Context, id string, req SaleRequest) (*Sale, error)

	// DeleteSale removes a sale, invalidating the cache.
	DeleteSale(ctx context.Context, id string) error

	// ActiveSales returns sales currently running, for the storefront.
	ActiveSales(ctx context.Context) ([]*Sale, error)
}

type service struct {
	repo  Repository
	cache *Cache
}

// NewService creates a new sale service. The cache may be nil in tests.
func NewService(repo Repository, cache *Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) CreateSale(ctx context.Context, req SaleRequest) (*Sale, error) {
	sale := &Sale{ID: uuid.New()}
	if err := applyRequest(sale, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	s.invalidate()
	return sale, nil
}

func (s *service) GetSale(ctx context.Context, id string) (*Sale, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListSales(ctx context.Context) ([]*Sale, error) {
	return s.repo.List(ctx)
}

func (s *service) ActiveSales(ctx context.Context) ([]*Sale, error) {
	return s.repo.ListApplicable(ctx)
}

func (s *service) UpdateSale(ctx context.Context, id string, req SaleRequest) (*Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sale not found: %w", err)
	}
	if err := applyRequest(sale, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	s.invalidate()
	return sale, nil
}

func (s *service) DeleteSale(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *service) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

// applyRequest validates the request and copies it onto the sale.
//
// Discount percentages outside (0, 100] are rejected here at the admin
// boundary; the pricing calculation itself deliberately does not clamp, so
// this is the only guard against nonsense values reaching the storefront.
func applyRequest(sale *Sale, req SaleRequest) error {
	if req.DiscountPercentage < 1 || req.DiscountPercentage > 100 {
		return fmt.Errorf("discount_percentage must be between 1 and 100")
	}
	if !req.EndDate.After(req.StartDate) {
		return fmt.Errorf("end_date must be after start_date")
	}
	if !req.IsGlobal && req.ProductID == "" {
		return fmt.Errorf("product_id is required for a product-specific sale")
	}

	sale.Name = req.Name
	sale.DiscountPercentage = req.DiscountPercentage
	sale.StartDate = req.StartDate
	sale.EndDate = req.EndDate
	sale.IsActive = req.IsActive
	sale.IsGlobal = req.IsGlobal
	sale.ProductID = nil
	if !req.IsGlobal {
		pid, err := uuid.Parse(req.ProductID)
		if err != nil {
			return fmt.Errorf("invalid product_id: %w", err)
		}
		sale.ProductID = &pid
	}
	return nil
}
