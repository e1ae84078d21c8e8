package sale

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	Repository
	sales []*Sale
	err   error
	calls int
}

func (r *stubRepo) ListApplicable(ctx context.Context) ([]*Sale, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.sales, nil
}

func activeSale(discount float64) *Sale {
	return &Sale{
		ID:                 uuid.New(),
		DiscountPercentage: discount,
		IsActive:           true,
		IsGlobal:           true,
		StartDate:          time.Now().Add(-time.Hour),
		EndDate:            time.Now().Add(time.Hour),
	}
}

func TestCacheServesWithinWindow(t *testing.T) {
	repo := &stubRepo{sales: []*Sale{activeSale(20)}}
	c := NewCache(repo, time.Minute)

	first, err := c.Applicable(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 20.0, first[0].DiscountPercentage)

	_, err = c.Applicable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "second read inside the window must not hit the repository")
}

func TestCacheRefetchesAfterTTL(t *testing.T) {
	repo := &stubRepo{sales: []*Sale{activeSale(20)}}
	c := NewCache(repo, time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }

	_, err := c.Applicable(context.Background())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = c.Applicable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCacheInvalidateForcesRefetch(t *testing.T) {
	repo := &stubRepo{sales: []*Sale{activeSale(20)}}
	c := NewCache(repo, time.Minute)

	_, err := c.Applicable(context.Background())
	require.NoError(t, err)

	repo.sales = []*Sale{activeSale(50)}
	c.Invalidate()

	sales, err := c.Applicable(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 50.0, sales[0].DiscountPercentage)
	assert.Equal(t, 2, repo.calls)
}

func TestCacheServesStaleOnRepositoryError(t *testing.T) {
	repo := &stubRepo{sales: []*Sale{activeSale(20)}}
	c := NewCache(repo, time.Minute)

	_, err := c.Applicable(context.Background())
	require.NoError(t, err)

	repo.err = errors.New("connection refused")
	c.Invalidate()

	sales, err := c.Applicable(context.Background())
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestCacheErrorWithNothingCached(t *testing.T) {
	repo := &stubRepo{err: errors.New("connection refused")}
	c := NewCache(repo, time.Minute)

	_, err := c.Applicable(context.Background())
	assert.Error(t, err)
}
