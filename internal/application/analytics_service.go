package application

import (
	"context"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	repo "github.com/oksasatya/autoforge-api/internal/domain/repository"
)

type AnalyticsService struct {
	Repo repo.AnalyticsRepository
}

func NewAnalyticsService(r repo.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{Repo: r}
}

// DashboardMetrics holds live totals plus two static values. Placeholders
// names the fields that are not derived from data.
type DashboardMetrics struct {
	TotalBrands          int64    `json:"totalBrands"`
	TotalVehicles        int64    `json:"totalVehicles"`
	TotalAssets          int64    `json:"totalAssets"`
	TotalRevenue         float64  `json:"totalRevenue"`
	MonthlyGrowth        float64  `json:"monthlyGrowth"`
	CustomerSatisfaction float64  `json:"customerSatisfaction"`
	Placeholders         []string `json:"placeholders"`
}

type Breakdown struct {
	VehiclesByBrand  []entity.BrandVehicleCount `json:"vehiclesByBrand"`
	AssetsByCategory []entity.CategoryTotal     `json:"assetsByCategory"`
	PriceStats       entity.PriceStats          `json:"priceStats"`
}

func (s *AnalyticsService) Metrics(ctx context.Context) (DashboardMetrics, error) {
	t, err := s.Repo.Totals(ctx)
	if err != nil {
		return DashboardMetrics{}, storeError(err, nil)
	}
	return DashboardMetrics{
		TotalBrands:          t.Brands,
		TotalVehicles:        t.Vehicles,
		TotalAssets:          t.Assets,
		TotalRevenue:         t.TotalRevenue,
		MonthlyGrowth:        entity.PlaceholderMonthlyGrowth,
		CustomerSatisfaction: entity.PlaceholderCustomerSatisfaction,
		Placeholders:         []string{"monthlyGrowth", "customerSatisfaction"},
	}, nil
}

func (s *AnalyticsService) Breakdown(ctx context.Context) (Breakdown, error) {
	byBrand, err := s.Repo.VehiclesByBrand(ctx)
	if err != nil {
		return Breakdown{}, storeError(err, nil)
	}
	byCategory, err := s.Repo.AssetsByCategory(ctx)
	if err != nil {
		return Breakdown{}, storeError(err, nil)
	}
	stats, err := s.Repo.PriceStats(ctx)
	if err != nil {
		return Breakdown{}, storeError(err, nil)
	}
	if byBrand == nil {
		byBrand = []entity.BrandVehicleCount{}
	}
	if byCategory == nil {
		byCategory = []entity.CategoryTotal{}
	}
	return Breakdown{VehiclesByBrand: byBrand, AssetsByCategory: byCategory, PriceStats: stats}, nil
}
