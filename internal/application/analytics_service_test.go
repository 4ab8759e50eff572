package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/internal/seed"
)

func seeded(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)
	_, err := seed.Run(context.Background(), seed.Services{
		Auth: f.auth, Brands: f.brands, Vehicles: f.vehicles, Assets: f.assets,
	}, nil)
	require.NoError(t, err)
	return f
}

func TestMetrics_Seeded(t *testing.T) {
	f := seeded(t)

	m, err := f.analytics.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), m.TotalBrands)
	assert.Equal(t, int64(4), m.TotalVehicles)
	assert.Equal(t, int64(8), m.TotalAssets)
	assert.Equal(t, 387000.0, m.TotalRevenue)
	assert.Equal(t, entity.PlaceholderMonthlyGrowth, m.MonthlyGrowth)
	assert.Equal(t, []string{"monthlyGrowth", "customerSatisfaction"}, m.Placeholders)
}

func TestBreakdown_Seeded(t *testing.T) {
	f := seeded(t)

	b, err := f.analytics.Breakdown(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.PriceStats{AvgPrice: 96750, MinPrice: 78000, MaxPrice: 125000}, b.PriceStats)
	require.Len(t, b.VehiclesByBrand, 4)
	for _, row := range b.VehiclesByBrand {
		assert.Equal(t, int64(1), row.Count)
	}
	// equal counts fall back to name order
	assert.Equal(t, "Apex Motors", b.VehiclesByBrand[0].BrandName)

	byCat := map[entity.AssetCategory]entity.CategoryTotal{}
	for _, c := range b.AssetsByCategory {
		byCat[c.Category] = c
	}
	assert.Equal(t, int64(2), byCat[entity.CategoryPaint].Count)
	assert.Equal(t, 5500.0, byCat[entity.CategoryPaint].TotalValue)
	assert.Equal(t, 7700.0, byCat[entity.CategoryPerformance].TotalValue)
	assert.Equal(t, 12000.0, byCat[entity.CategoryExterior].TotalValue)
}

func TestBreakdown_Empty(t *testing.T) {
	f := newFixture(t)

	b, err := f.analytics.Breakdown(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.PriceStats{}, b.PriceStats)
	assert.NotNil(t, b.VehiclesByBrand)
	assert.Empty(t, b.VehiclesByBrand)
	assert.NotNil(t, b.AssetsByCategory)

	m, err := f.analytics.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, application.DashboardMetrics{
		MonthlyGrowth:        entity.PlaceholderMonthlyGrowth,
		CustomerSatisfaction: entity.PlaceholderCustomerSatisfaction,
		Placeholders:         []string{"monthlyGrowth", "customerSatisfaction"},
	}, m)
}
