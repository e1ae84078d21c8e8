package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines review business logic.
type Service interface {
	// Submit stores a new review pending moderation.
	Submit(ctx context.Context, req SubmitRequest) (*Review, error)

	// ProductReviews returns approved reviews for a product.
	ProductReviews(ctx context.Context, productID string) ([]*Review, error)

	// PendingReviews returns unmoderated reviews for the back office.
	PendingReviews(ctx context.Context) ([]*Review, error)

	// Approve publishes a review to the storefront.
	Approve(ctx context.Context, id string) error

	// Delete removes a review.
	Delete(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new review service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	if req.AuthorName == "" {
		return nil, fmt.Errorf("author_name is required")
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	rv := &Review{
		ID:         uuid.New(),
		ProductID:  pid,
		AuthorName: req.AuthorName,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) ProductReviews(ctx context.Context, productID string) ([]*Review, error) {
	return s.repo.ListByProduct(ctx, productID, true)
}

func (s *service) PendingReviews(ctx context.Context) ([]*Review, error) {
	return s.repo.ListPending(ctx)
}

func (s *service) Approve(ctx context.Context, id string) error {
	return s.repo.SetApproved(ctx, id, true)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
