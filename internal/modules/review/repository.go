package review

import "context"

// Repository defines data access for reviews.
type Repository interface {
	Create(ctx context.Context, rv *Review) error
	ListByProduct(ctx context.Context, productID string, approvedOnly bool) ([]*Review, error)
	ListPending(ctx context.Context) ([]*Review, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}
