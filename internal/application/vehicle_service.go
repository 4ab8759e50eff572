package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	repo "github.com/oksasatya/autoforge-api/internal/domain/repository"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
	"github.com/oksasatya/autoforge-api/pkg/validation"
)

// VehicleIndexer keeps a full-text index of the catalog. Search returns
// matching vehicle ids ordered by relevance.
type VehicleIndexer interface {
	Index(ctx context.Context, v *entity.Vehicle, brand *entity.Brand) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

const searchLimit = 50

type VehicleService struct {
	Vehicles repo.VehicleRepository
	Brands   repo.BrandRepository
	Index    VehicleIndexer // optional
	Logger   *logrus.Logger
}

func NewVehicleService(vehicles repo.VehicleRepository, brands repo.BrandRepository, index VehicleIndexer, logger *logrus.Logger) *VehicleService {
	return &VehicleService{Vehicles: vehicles, Brands: brands, Index: index, Logger: logger}
}

type VehicleInput struct {
	Name           string                        `json:"name" validate:"required,min=2,max=100"`
	BrandID        string                        `json:"brandId" validate:"required,uuid"`
	VehicleModel   string                        `json:"vehicleModel" validate:"required"`
	Year           int                           `json:"year" validate:"gte=1900,lte=2100"`
	BasePrice      float64                       `json:"basePrice" validate:"gte=0"`
	Price          float64                       `json:"price" validate:"gte=0"`
	ModelURL       string                        `json:"modelUrl"`
	Thumbnail      string                        `json:"thumbnail"`
	Description    string                        `json:"description"`
	Engine         string                        `json:"engine"`
	Horsepower     int                           `json:"horsepower" validate:"gte=0"`
	Torque         int                           `json:"torque" validate:"gte=0"`
	Acceleration   float64                       `json:"acceleration" validate:"gte=0"`
	TopSpeed       int                           `json:"topSpeed" validate:"gte=0"`
	Specs          entity.VehicleSpecs           `json:"specs"`
	CustomModelURL string                        `json:"customModelUrl"`
	Customizations *entity.VehicleCustomizations `json:"customizations"`
}

func (in VehicleInput) entity() *entity.Vehicle {
	v := &entity.Vehicle{
		Name:           strings.TrimSpace(in.Name),
		BrandID:        strings.TrimSpace(in.BrandID),
		VehicleModel:   strings.TrimSpace(in.VehicleModel),
		Year:           in.Year,
		BasePrice:      in.BasePrice,
		Price:          in.Price,
		ModelURL:       strings.TrimSpace(in.ModelURL),
		Thumbnail:      strings.TrimSpace(in.Thumbnail),
		Description:    strings.TrimSpace(in.Description),
		Engine:         strings.TrimSpace(in.Engine),
		Horsepower:     in.Horsepower,
		Torque:         in.Torque,
		Acceleration:   in.Acceleration,
		TopSpeed:       in.TopSpeed,
		Specs:          in.Specs,
		CustomModelURL: strings.TrimSpace(in.CustomModelURL),
		Customizations: in.Customizations,
	}
	v.Specs.Engine = strings.TrimSpace(v.Specs.Engine)
	v.Normalize()
	return v
}

// prepare normalizes the payload, validates it and checks the brand reference.
func (s *VehicleService) prepare(ctx context.Context, in VehicleInput) (*entity.Vehicle, *entity.Brand, error) {
	v := in.entity()
	in.Name, in.BrandID, in.VehicleModel, in.Price = v.Name, v.BrandID, v.VehicleModel, v.Price

	fields := validation.Run(in, validation.Struct[VehicleInput])
	var brand *entity.Brand
	if _, bad := fields["brandId"]; !bad {
		b, err := s.Brands.GetByID(ctx, v.BrandID)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			if fields == nil {
				fields = map[string]string{}
			}
			fields["brandId"] = "brand does not exist"
		case err != nil:
			return nil, nil, storeError(err, nil)
		default:
			brand = b
		}
	}
	if fields != nil {
		return nil, nil, validationFailed(fields)
	}
	return v, brand, nil
}

// views expands brandId for every vehicle with one batched lookup.
func (s *VehicleService) views(ctx context.Context, vehicles []*entity.Vehicle) ([]entity.VehicleView, error) {
	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		ids = append(ids, v.BrandID)
	}
	brands, err := s.Brands.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err, nil)
	}
	out := make([]entity.VehicleView, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, v.ToView(brands[v.BrandID]))
	}
	return out, nil
}

func (s *VehicleService) view(ctx context.Context, v *entity.Vehicle) (entity.VehicleView, error) {
	views, err := s.views(ctx, []*entity.Vehicle{v})
	if err != nil {
		return entity.VehicleView{}, err
	}
	return views[0], nil
}

func (s *VehicleService) List(ctx context.Context, f repo.VehicleFilter) ([]entity.VehicleView, error) {
	vehicles, err := s.Vehicles.List(ctx, f)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return s.views(ctx, vehicles)
}

func (s *VehicleService) GetByID(ctx context.Context, id string) (entity.VehicleView, error) {
	v, err := s.Vehicles.GetByID(ctx, id)
	if err != nil {
		return entity.VehicleView{}, storeError(err, ErrVehicleNotFound)
	}
	return s.view(ctx, v)
}

func (s *VehicleService) Create(ctx context.Context, in VehicleInput) (entity.VehicleView, error) {
	v, brand, err := s.prepare(ctx, in)
	if err != nil {
		return entity.VehicleView{}, err
	}
	if err := s.Vehicles.Create(ctx, v); err != nil {
		return entity.VehicleView{}, storeError(err, nil)
	}
	s.reindex(ctx, v, brand)
	return v.ToView(brand), nil
}

func (s *VehicleService) Update(ctx context.Context, id string, in VehicleInput) (entity.VehicleView, error) {
	if _, err := s.Vehicles.GetByID(ctx, id); err != nil {
		return entity.VehicleView{}, storeError(err, ErrVehicleNotFound)
	}
	v, brand, err := s.prepare(ctx, in)
	if err != nil {
		return entity.VehicleView{}, err
	}
	v.ID = id
	if err := s.Vehicles.Update(ctx, v); err != nil {
		return entity.VehicleView{}, storeError(err, ErrVehicleNotFound)
	}
	s.reindex(ctx, v, brand)
	return v.ToView(brand), nil
}

func (s *VehicleService) Delete(ctx context.Context, id string) (entity.VehicleView, error) {
	v, err := s.Vehicles.GetByID(ctx, id)
	if err != nil {
		return entity.VehicleView{}, storeError(err, ErrVehicleNotFound)
	}
	if err := s.Vehicles.Delete(ctx, id); err != nil {
		return entity.VehicleView{}, storeError(err, ErrVehicleNotFound)
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			helpers.LogWarn(s.Logger, "search index delete failed", err, logrus.Fields{"vehicle_id": id})
		}
	}
	return v.ToView(nil), nil
}

// Search matches q against the search index, or against the store when no
// index is configured or the index is unreachable.
func (s *VehicleService) Search(ctx context.Context, q string) ([]entity.VehicleView, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, invalidInput(map[string]string{"q": "is required"})
	}
	if s.Index != nil {
		ids, err := s.Index.Search(ctx, q, searchLimit)
		if err == nil {
			return s.byIDs(ctx, ids)
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("search index unavailable, scanning store")
		}
	}

	all, err := s.Vehicles.List(ctx, repo.VehicleFilter{})
	if err != nil {
		return nil, storeError(err, nil)
	}
	needle := strings.ToLower(q)
	matched := make([]*entity.Vehicle, 0)
	for _, v := range all {
		hay := strings.ToLower(v.Name + " " + v.VehicleModel + " " + v.Description + " " + v.Engine)
		if strings.Contains(hay, needle) {
			matched = append(matched, v)
		}
		if len(matched) == searchLimit {
			break
		}
	}
	return s.views(ctx, matched)
}

// byIDs loads vehicles keeping the order of ids; stale index entries are skipped.
func (s *VehicleService) byIDs(ctx context.Context, ids []string) ([]entity.VehicleView, error) {
	found, err := s.Vehicles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err, nil)
	}
	ordered := make([]*entity.Vehicle, 0, len(found))
	for _, id := range ids {
		if v, ok := found[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return s.views(ctx, ordered)
}

// Reindex pushes every stored vehicle to the search index.
func (s *VehicleService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	all, err := s.Vehicles.List(ctx, repo.VehicleFilter{})
	if err != nil {
		return 0, storeError(err, nil)
	}
	ids := make([]string, 0, len(all))
	for _, v := range all {
		ids = append(ids, v.BrandID)
	}
	brands, err := s.Brands.GetByIDs(ctx, ids)
	if err != nil {
		return 0, storeError(err, nil)
	}
	for _, v := range all {
		if err := s.Index.Index(ctx, v, brands[v.BrandID]); err != nil {
			return 0, err
		}
	}
	return len(all), nil
}

func (s *VehicleService) reindex(ctx context.Context, v *entity.Vehicle, brand *entity.Brand) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, v, brand); err != nil {
		helpers.LogWarn(s.Logger, "search index update failed", err, logrus.Fields{"vehicle_id": v.ID})
	}
}
