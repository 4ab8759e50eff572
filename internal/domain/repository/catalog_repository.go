package repository

import (
	"context"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
)

// BrandRepository persists brands. Create and Update return ErrDuplicate on a name clash.
type BrandRepository interface {
	List(ctx context.Context) ([]*entity.Brand, error)
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Brand, error)
	GetByName(ctx context.Context, name string) (*entity.Brand, error)
	Create(ctx context.Context, b *entity.Brand) error
	Update(ctx context.Context, b *entity.Brand) error
	Delete(ctx context.Context, id string) error
}

type VehicleFilter struct {
	BrandID string
}

type VehicleRepository interface {
	List(ctx context.Context, f VehicleFilter) ([]*entity.Vehicle, error)
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Vehicle, error)
	Create(ctx context.Context, v *entity.Vehicle) error
	Update(ctx context.Context, v *entity.Vehicle) error
	Delete(ctx context.Context, id string) error
}

type AssetFilter struct {
	Category entity.AssetCategory
}

type AssetRepository interface {
	List(ctx context.Context, f AssetFilter) ([]*entity.CustomizationAsset, error)
	GetByID(ctx context.Context, id string) (*entity.CustomizationAsset, error)
	Create(ctx context.Context, a *entity.CustomizationAsset) error
	Update(ctx context.Context, a *entity.CustomizationAsset) error
	Delete(ctx context.Context, id string) error
}

// AnalyticsRepository runs read-only aggregations over the catalog.
type AnalyticsRepository interface {
	Totals(ctx context.Context) (entity.CatalogTotals, error)
	VehiclesByBrand(ctx context.Context) ([]entity.BrandVehicleCount, error)
	AssetsByCategory(ctx context.Context) ([]entity.CategoryTotal, error)
	PriceStats(ctx context.Context) (entity.PriceStats, error)
}

// Store bundles the repositories of one backing store.
type Store interface {
	Users() UserRepository
	Brands() BrandRepository
	Vehicles() VehicleRepository
	Assets() AssetRepository
	Analytics() AnalyticsRepository
	Ping(ctx context.Context) error
	Close()
}
