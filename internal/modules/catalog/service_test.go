package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamidraza-dev/bazaarline-backend/internal/pricing"
)

func testSale(pct float64, productID string) pricing.Sale {
	return pricing.Sale{
		ID:                 uuid.NewString(),
		DiscountPercentage: pct,
		StartDate:          time.Now().Add(-time.Hour),
		EndDate:            time.Now().Add(time.Hour),
		IsActive:           true,
		IsGlobal:           productID == "",
		ProductID:          productID,
	}
}

func TestDecorateNoSales(t *testing.T) {
	p := &Product{ID: uuid.New(), Price: 1500}

	sp := decorate(p, nil, time.Now())

	assert.Equal(t, 1500.0, sp.DisplayPrice.Original)
	assert.Equal(t, 1500.0, sp.DisplayPrice.Final)
	assert.Nil(t, sp.DisplayPrice.DiscountPercent)
}

func TestDecorateProductSaleBeatsGlobal(t *testing.T) {
	p := &Product{ID: uuid.New(), Price: 1000}
	sales := []pricing.Sale{
		testSale(50, ""),
		testSale(10, p.ID.String()),
	}

	sp := decorate(p, sales, time.Now())

	assert.Equal(t, 900.0, sp.DisplayPrice.Final)
	require.NotNil(t, sp.DisplayPrice.DiscountPercent)
	assert.Equal(t, 10, *sp.DisplayPrice.DiscountPercent)
}

func TestDecorateGlobalSaleApplies(t *testing.T) {
	p := &Product{ID: uuid.New(), Price: 1000}
	sales := []pricing.Sale{testSale(20, "")}

	sp := decorate(p, sales, time.Now())

	assert.Equal(t, 800.0, sp.DisplayPrice.Final)
}

// The cache can hand out a sale that ended within the staleness window;
// decorate must re-check applicability before resolving.
func TestDecorateSkipsExpiredCachedSale(t *testing.T) {
	p := &Product{ID: uuid.New(), Price: 1000}
	expired := testSale(20, "")
	expired.EndDate = time.Now().Add(-time.Minute)

	sp := decorate(p, []pricing.Sale{expired}, time.Now())

	assert.Equal(t, 1000.0, sp.DisplayPrice.Final)
	assert.Nil(t, sp.DisplayPrice.DiscountPercent)
}

func TestPriceUnmarshalNumberAndString(t *testing.T) {
	var req ProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Kurta","slug":"kurta","price":2400}`), &req))
	assert.Equal(t, Price(2400), req.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"Kurta","slug":"kurta","price":"2400.50"}`), &req))
	assert.Equal(t, Price(2400.50), req.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"Kurta","slug":"kurta","price":""}`), &req))
	assert.Equal(t, Price(0), req.Price)

	err := json.Unmarshal([]byte(`{"name":"Kurta","slug":"kurta","price":"abc"}`), &req)
	assert.Error(t, err)
}
