package sale

import "context"

// Repository defines data access for sale records.
type Repository interface {
	// Create persists a new sale.
	Create(ctx context.Context, s *Sale) error

	// GetByID retrieves a sale by UUID.
	GetByID(ctx context.Context, id string) (*Sale, error)

	// List returns all sales, newest first, for the back office.
	List(ctx context.Context) ([]*Sale, error)

	// ListApplicable returns sales that are active and inside their date
	// window at the moment of the query (end date strictly in the future).
	ListApplicable(ctx context.Context) ([]*Sale, error)

	// Update persists changes to an existing sale.
	Update(ctx context.Context, s *Sale) error

	// Delete removes a sale.
	Delete(ctx context.Context, id string) error
}
