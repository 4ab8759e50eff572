package postgres

import (
	"context"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
)

// AnalyticsRepository aggregates directly in SQL; nothing is cached.
type AnalyticsRepository struct {
	db *Manager
}

func NewAnalyticsRepository(db *Manager) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Totals(ctx context.Context) (entity.CatalogTotals, error) {
	var t entity.CatalogTotals
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return t, err
	}
	err = pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM brands),
			(SELECT count(*) FROM vehicles),
			(SELECT count(*) FROM customization_assets),
			(SELECT COALESCE(SUM(base_price), 0) FROM vehicles)
	`).Scan(&t.Brands, &t.Vehicles, &t.Assets, &t.TotalRevenue)
	return t, r.db.wrap(err)
}

// VehiclesByBrand counts vehicles per existing brand; vehicles whose brand
// no longer exists are left out.
func (r *AnalyticsRepository) VehiclesByBrand(ctx context.Context) ([]entity.BrandVehicleCount, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, `
		SELECT b.name, count(*) AS cnt
		FROM vehicles v
		JOIN brands b ON b.id = v.brand_id
		GROUP BY b.id, b.name
		ORDER BY cnt DESC, b.name
	`)
	if err != nil {
		return nil, r.db.wrap(err)
	}
	defer rows.Close()

	out := make([]entity.BrandVehicleCount, 0)
	for rows.Next() {
		var c entity.BrandVehicleCount
		if err := rows.Scan(&c.BrandName, &c.Count); err != nil {
			return nil, r.db.wrap(err)
		}
		out = append(out, c)
	}
	return out, r.db.wrap(rows.Err())
}

func (r *AnalyticsRepository) AssetsByCategory(ctx context.Context) ([]entity.CategoryTotal, error) {
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx, `
		SELECT category, count(*), COALESCE(SUM(price), 0)
		FROM customization_assets
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, r.db.wrap(err)
	}
	defer rows.Close()

	out := make([]entity.CategoryTotal, 0)
	for rows.Next() {
		var c entity.CategoryTotal
		var category string
		if err := rows.Scan(&category, &c.Count, &c.TotalValue); err != nil {
			return nil, r.db.wrap(err)
		}
		c.Category = entity.AssetCategory(category)
		out = append(out, c)
	}
	return out, r.db.wrap(rows.Err())
}

func (r *AnalyticsRepository) PriceStats(ctx context.Context) (entity.PriceStats, error) {
	var s entity.PriceStats
	pool, err := r.db.Pool(ctx)
	if err != nil {
		return s, err
	}
	err = pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(base_price), 0), COALESCE(MIN(base_price), 0), COALESCE(MAX(base_price), 0)
		FROM vehicles
	`).Scan(&s.AvgPrice, &s.MinPrice, &s.MaxPrice)
	return s, r.db.wrap(err)
}

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)
