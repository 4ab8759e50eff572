package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	repo "github.com/oksasatya/autoforge-api/internal/domain/repository"
	"github.com/oksasatya/autoforge-api/pkg/validation"
)

type BrandService struct {
	Brands repo.BrandRepository
	Logger *logrus.Logger
}

func NewBrandService(brands repo.BrandRepository, logger *logrus.Logger) *BrandService {
	return &BrandService{Brands: brands, Logger: logger}
}

// BrandInput is the create/update payload. Founded and FoundedYear are
// interchangeable; either one is enough.
type BrandInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Logo        string `json:"logo"`
	Description string `json:"description" validate:"required,min=10,max=500"`
	Founded     int    `json:"founded" validate:"required,gte=1800,lte=2100"`
	FoundedYear int    `json:"foundedYear" validate:"omitempty,gte=1800,lte=2100"`
	Country     string `json:"country" validate:"required"`
}

func (in BrandInput) entity() *entity.Brand {
	b := &entity.Brand{
		Name:        strings.TrimSpace(in.Name),
		Logo:        strings.TrimSpace(in.Logo),
		Description: strings.TrimSpace(in.Description),
		Founded:     in.Founded,
		FoundedYear: in.FoundedYear,
		Country:     strings.TrimSpace(in.Country),
	}
	b.Normalize()
	return b
}

// prepare normalizes the payload and validates the normalized values.
func (in BrandInput) prepare() (*entity.Brand, error) {
	b := in.entity()
	normalized := BrandInput{
		Name:        b.Name,
		Logo:        b.Logo,
		Description: b.Description,
		Founded:     b.Founded,
		FoundedYear: b.FoundedYear,
		Country:     b.Country,
	}
	if fields := validation.Run(normalized, validation.Struct[BrandInput]); fields != nil {
		return nil, validationFailed(fields)
	}
	return b, nil
}

func (s *BrandService) List(ctx context.Context) ([]entity.BrandView, error) {
	brands, err := s.Brands.List(ctx)
	if err != nil {
		return nil, storeError(err, nil)
	}
	out := make([]entity.BrandView, 0, len(brands))
	for _, b := range brands {
		out = append(out, b.ToView())
	}
	return out, nil
}

func (s *BrandService) GetByID(ctx context.Context, id string) (entity.BrandView, error) {
	b, err := s.Brands.GetByID(ctx, id)
	if err != nil {
		return entity.BrandView{}, storeError(err, ErrBrandNotFound)
	}
	return b.ToView(), nil
}

func (s *BrandService) Create(ctx context.Context, in BrandInput) (entity.BrandView, error) {
	b, err := in.prepare()
	if err != nil {
		return entity.BrandView{}, err
	}
	if _, err := s.Brands.GetByName(ctx, b.Name); err == nil {
		return entity.BrandView{}, ErrDuplicateName
	} else if !errors.Is(err, repo.ErrNotFound) {
		return entity.BrandView{}, storeError(err, nil)
	}
	if err := s.Brands.Create(ctx, b); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return entity.BrandView{}, ErrDuplicateName
		}
		return entity.BrandView{}, storeError(err, nil)
	}
	return b.ToView(), nil
}

func (s *BrandService) Update(ctx context.Context, id string, in BrandInput) (entity.BrandView, error) {
	if _, err := s.Brands.GetByID(ctx, id); err != nil {
		return entity.BrandView{}, storeError(err, ErrBrandNotFound)
	}
	b, err := in.prepare()
	if err != nil {
		return entity.BrandView{}, err
	}
	b.ID = id
	if err := s.Brands.Update(ctx, b); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return entity.BrandView{}, ErrDuplicateName
		}
		return entity.BrandView{}, storeError(err, ErrBrandNotFound)
	}
	return b.ToView(), nil
}

// Delete removes the brand and returns it. Vehicles referencing it are kept.
func (s *BrandService) Delete(ctx context.Context, id string) (entity.BrandView, error) {
	b, err := s.Brands.GetByID(ctx, id)
	if err != nil {
		return entity.BrandView{}, storeError(err, ErrBrandNotFound)
	}
	if err := s.Brands.Delete(ctx, id); err != nil {
		return entity.BrandView{}, storeError(err, ErrBrandNotFound)
	}
	return b.ToView(), nil
}
