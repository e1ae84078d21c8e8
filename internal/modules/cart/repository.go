package cart

import "context"

// Store holds a cart keyed by its owner. The user store is Postgres-backed;
// the guest store lives in Redis with a TTL.
type Store interface {
	// Items returns the cart's lines, oldest first. A missing cart is an
	// empty slice, not an error.
	Items(ctx context.Context, key string) ([]*Item, error)

	// Save replaces the cart's contents.
	Save(ctx context.Context, key string, items []*Item) error

	// Clear removes the cart.
	Clear(ctx context.Context, key string) error
}
