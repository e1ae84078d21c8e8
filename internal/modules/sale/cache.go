package sale

import (
	"context"
	"sync"
	"time"

	"github.com/hamidraza-dev/bazaarline-backend/internal/pricing"
)

// Cache holds the currently applicable sales with a time-based staleness
// window, so storefront requests don't hit the database on every price
// render. Reads past the window refetch; admin writes invalidate eagerly.
//
// The cache hands out pricing.Sale values, keeping the calculation core fed
// by explicit inputs rather than ambient state.
type Cache struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	sales     []pricing.Sale
	fetchedAt time.Time
	loaded    bool
}

// DefaultCacheTTL matches the storefront's tolerance for a just-ended or
// just-started sale still showing the old price.
const DefaultCacheTTL = 30 * time.Second

// NewCache creates a sale cache over the repository. A ttl of 0 uses
// DefaultCacheTTL.
func NewCache(repo Repository, ttl time.Duration) *Cache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{repo: repo, ttl: ttl, now: time.Now}
}

// Applicable returns the currently applicable sales, refreshing from the
// repository when the cached copy is stale or invalidated. The returned slice
// must not be mutated by callers.
func (c *Cache) Applicable(ctx context.Context) ([]pricing.Sale, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.sales, nil
	}

	records, err := c.repo.ListApplicable(ctx)
	if err != nil {
		// Serve the stale copy if we have one rather than failing the
		// storefront render over a transient database error.
		if c.loaded {
			return c.sales, nil
		}
		return nil, err
	}

	sales := make([]pricing.Sale, 0, len(records))
	for _, rec := range records {
		sales = append(sales, rec.Pricing())
	}
	c.sales = sales
	c.fetchedAt = c.now()
	c.loaded = true
	return c.sales, nil
}

// Invalidate marks the cached copy stale so the next read refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
