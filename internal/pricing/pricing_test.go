package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(p float64) *Sale {
	return &Sale{ID: "s1", DiscountPercentage: p, IsActive: true}
}

func TestResolveNoSale(t *testing.T) {
	got := Resolve(100, nil, nil, true)
	assert.Equal(t, 100.0, got.FinalPrice)
	assert.Nil(t, got.DiscountPercent)
}

func TestResolveGlobalSaleOnly(t *testing.T) {
	got := Resolve(100, nil, pct(20), true)
	assert.Equal(t, 80.0, got.FinalPrice)
	require.NotNil(t, got.DiscountPercent)
	assert.Equal(t, 20, *got.DiscountPercent)
}

func TestResolveProductSaleBeatsGlobal(t *testing.T) {
	got := Resolve(100, pct(10), pct(50), true)
	assert.Equal(t, 90.0, got.FinalPrice)
	require.NotNil(t, got.DiscountPercent)
	assert.Equal(t, 10, *got.DiscountPercent)
}

func TestResolveOptOutOverridesSales(t *testing.T) {
	got := Resolve(100, pct(50), pct(50), false)
	assert.Equal(t, 100.0, got.FinalPrice)
	assert.Nil(t, got.DiscountPercent)
}

func TestResolveIsPure(t *testing.T) {
	a := Resolve(59.99, pct(15), nil, true)
	b := Resolve(59.99, pct(15), nil, true)
	assert.Equal(t, a, b)
}

func TestResolveZeroPercentSaleBehavesLikeNoSale(t *testing.T) {
	// A 0% sale must not report a discount nor alter the price.
	got := Resolve(100, pct(0), nil, true)
	assert.Equal(t, 100.0, got.FinalPrice)
	assert.Nil(t, got.DiscountPercent)
}

func TestResolveFullAndOverfullDiscountUnclamped(t *testing.T) {
	got := Resolve(100, pct(100), nil, true)
	assert.Equal(t, 0.0, got.FinalPrice)

	got = Resolve(100, pct(150), nil, true)
	assert.Equal(t, -50.0, got.FinalPrice)
}

func TestResolveZeroAndNegativeBasePassThrough(t *testing.T) {
	got := Resolve(0, pct(20), nil, true)
	assert.Equal(t, 0.0, got.FinalPrice)

	got = Resolve(-10, nil, nil, true)
	assert.Equal(t, -10.0, got.FinalPrice)
}

func TestResolveFractionalPercentageRoundsForDisplay(t *testing.T) {
	got := Resolve(200, pct(12.5), nil, true)
	assert.InDelta(t, 175.0, got.FinalPrice, 1e-9)
	require.NotNil(t, got.DiscountPercent)
	assert.Equal(t, 13, *got.DiscountPercent)
}

func TestApplicable(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	base := Sale{
		IsActive:  true,
		StartDate: now.Add(-24 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
	}

	assert.True(t, Applicable(base, now))

	inactive := base
	inactive.IsActive = false
	assert.False(t, Applicable(inactive, now))

	notStarted := base
	notStarted.StartDate = now.Add(time.Hour)
	assert.False(t, Applicable(notStarted, now))

	// End date must be strictly in the future.
	endingNow := base
	endingNow.EndDate = now
	assert.False(t, Applicable(endingNow, now))
}

func TestLookupFirstMatchWins(t *testing.T) {
	sales := []Sale{
		{ID: "g1", IsGlobal: true, DiscountPercentage: 10},
		{ID: "p1", ProductID: "prod-a", DiscountPercentage: 20},
		{ID: "g2", IsGlobal: true, DiscountPercentage: 30},
		{ID: "p2", ProductID: "prod-a", DiscountPercentage: 40},
	}

	global, product := Lookup(sales, "prod-a")
	require.NotNil(t, global)
	require.NotNil(t, product)
	assert.Equal(t, "g1", global.ID)
	assert.Equal(t, "p1", product.ID)
}

func TestLookupAbsenceIsNormal(t *testing.T) {
	global, product := Lookup(nil, "prod-a")
	assert.Nil(t, global)
	assert.Nil(t, product)

	sales := []Sale{{ID: "p9", ProductID: "prod-z"}}
	global, product = Lookup(sales, "prod-a")
	assert.Nil(t, global)
	assert.Nil(t, product)
}

func TestUnitPricePrecedence(t *testing.T) {
	assert.Equal(t, 35.0, UnitPrice(10, 20, 35), "color override wins")
	assert.Equal(t, 20.0, UnitPrice(10, 20, 0), "variation next")
	assert.Equal(t, 10.0, UnitPrice(10, 0, 0), "product base last")
}

func TestSubtotalAndTotal(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 80, Quantity: 2},
		{UnitPrice: 45, Quantity: 1},
	}
	sub := Subtotal(items)
	assert.Equal(t, 205.0, sub)
	assert.Equal(t, 205.0, Total(sub, 0))
	assert.Equal(t, 455.0, Total(sub, 250))
}
