package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	repo "github.com/oksasatya/autoforge-api/internal/domain/repository"
	"github.com/oksasatya/autoforge-api/pkg/validation"
)

type AssetService struct {
	Assets   repo.AssetRepository
	Vehicles repo.VehicleRepository
	Logger   *logrus.Logger
}

func NewAssetService(assets repo.AssetRepository, vehicles repo.VehicleRepository, logger *logrus.Logger) *AssetService {
	return &AssetService{Assets: assets, Vehicles: vehicles, Logger: logger}
}

type AssetInput struct {
	Name          string               `json:"name" validate:"required,min=2,max=100"`
	Category      entity.AssetCategory `json:"category" validate:"required,category"`
	Description   string               `json:"description"`
	Price         float64              `json:"price" validate:"gte=0"`
	Image         string               `json:"image"`
	Compatibility []string             `json:"compatibility" validate:"omitempty,dive,uuid"`
}

func (in AssetInput) prepare() (*entity.CustomizationAsset, error) {
	a := &entity.CustomizationAsset{
		Name:          strings.TrimSpace(in.Name),
		Category:      entity.AssetCategory(strings.ToLower(strings.TrimSpace(string(in.Category)))),
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price,
		Image:         strings.TrimSpace(in.Image),
		Compatibility: in.Compatibility,
	}
	a.Normalize()
	in.Name, in.Category = a.Name, a.Category
	if fields := validation.Run(in, validation.Struct[AssetInput]); fields != nil {
		return nil, validationFailed(fields)
	}
	return a, nil
}

// ParseCategory validates a category taken from a path or query string.
func ParseCategory(raw string) (entity.AssetCategory, error) {
	c := entity.AssetCategory(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", invalidInput(map[string]string{"category": "must be one of: paint, wheels, interior, exterior, performance"})
	}
	return c, nil
}

// views expands compatibility ids with one batched vehicle lookup.
func (s *AssetService) views(ctx context.Context, assets []*entity.CustomizationAsset) ([]entity.AssetView, error) {
	seen := map[string]struct{}{}
	ids := make([]string, 0)
	for _, a := range assets {
		for _, id := range a.Compatibility {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	vehicles := map[string]*entity.Vehicle{}
	if len(ids) > 0 {
		var err error
		if vehicles, err = s.Vehicles.GetByIDs(ctx, ids); err != nil {
			return nil, storeError(err, nil)
		}
	}
	out := make([]entity.AssetView, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.ToView(vehicles))
	}
	return out, nil
}

func (s *AssetService) view(ctx context.Context, a *entity.CustomizationAsset) (entity.AssetView, error) {
	views, err := s.views(ctx, []*entity.CustomizationAsset{a})
	if err != nil {
		return entity.AssetView{}, err
	}
	return views[0], nil
}

func (s *AssetService) List(ctx context.Context, f repo.AssetFilter) ([]entity.AssetView, error) {
	if f.Category != "" {
		c, err := ParseCategory(string(f.Category))
		if err != nil {
			return nil, err
		}
		f.Category = c
	}
	assets, err := s.Assets.List(ctx, f)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return s.views(ctx, assets)
}

func (s *AssetService) ListByCategory(ctx context.Context, category string) ([]entity.AssetView, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, repo.AssetFilter{Category: c})
}

func (s *AssetService) GetByID(ctx context.Context, id string) (entity.AssetView, error) {
	a, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return entity.AssetView{}, storeError(err, ErrAssetNotFound)
	}
	return s.view(ctx, a)
}

func (s *AssetService) Create(ctx context.Context, in AssetInput) (entity.AssetView, error) {
	a, err := in.prepare()
	if err != nil {
		return entity.AssetView{}, err
	}
	if err := s.Assets.Create(ctx, a); err != nil {
		return entity.AssetView{}, storeError(err, nil)
	}
	return s.view(ctx, a)
}

func (s *AssetService) Update(ctx context.Context, id string, in AssetInput) (entity.AssetView, error) {
	if _, err := s.Assets.GetByID(ctx, id); err != nil {
		return entity.AssetView{}, storeError(err, ErrAssetNotFound)
	}
	a, err := in.prepare()
	if err != nil {
		return entity.AssetView{}, err
	}
	a.ID = id
	if err := s.Assets.Update(ctx, a); err != nil {
		return entity.AssetView{}, storeError(err, ErrAssetNotFound)
	}
	return s.view(ctx, a)
}

func (s *AssetService) Delete(ctx context.Context, id string) (entity.AssetView, error) {
	a, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return entity.AssetView{}, storeError(err, ErrAssetNotFound)
	}
	if err := s.Assets.Delete(ctx, id); err != nil {
		return entity.AssetView{}, storeError(err, ErrAssetNotFound)
	}
	if s.Logger != nil {
		s.Logger.WithField("asset_id", id).Info("asset deleted")
	}
	return a.ToView(nil), nil
}
