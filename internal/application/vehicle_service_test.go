package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
)

type fakeIndex struct {
	docs    map[string]string
	hits    []string
	err     error
	deleted []string
}

func (x *fakeIndex) Index(_ context.Context, v *entity.Vehicle, brand *entity.Brand) error {
	if x.docs == nil {
		x.docs = map[string]string{}
	}
	name := ""
	if brand != nil {
		name = brand.Name
	}
	x.docs[v.ID] = name
	return nil
}

func (x *fakeIndex) Delete(_ context.Context, id string) error {
	x.deleted = append(x.deleted, id)
	return nil
}

func (x *fakeIndex) Search(context.Context, string, int) ([]string, error) {
	return x.hits, x.err
}

func newBrand(t *testing.T, f *fixture) entity.BrandView {
	t.Helper()
	b, err := f.brands.Create(context.Background(), apexInput())
	require.NoError(t, err)
	return b
}

func TestVehicleCreate_PriceFromBasePrice(t *testing.T) {
	f := newFixture(t)
	b := newBrand(t, f)

	v, err := f.vehicles.Create(context.Background(), gtrInput(b.ID))
	require.NoError(t, err)
	assert.Equal(t, 89000.0, v.Price)
	assert.Equal(t, 89000.0, v.BasePrice)
	assert.Equal(t, entity.DefaultVehicleThumbnail, v.Thumbnail)
	require.NotNil(t, v.Brand)
	assert.Equal(t, "Apex Motors", v.Brand.Name)
}

func TestVehicleCreate_ExplicitPriceKept(t *testing.T) {
	f := newFixture(t)
	b := newBrand(t, f)
	in := gtrInput(b.ID)
	in.Price = 92000

	v, err := f.vehicles.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 92000.0, v.Price)
}

func TestVehicleCreate_UnknownBrand(t *testing.T) {
	f := newFixture(t)

	_, err := f.vehicles.Create(context.Background(), gtrInput("7f1c1d5e-2b3a-4c8e-9a51-0d6f2f1b9a10"))
	assert.ErrorIs(t, err, application.ErrValidation)
	assert.Equal(t, "brand does not exist", fieldsOf(t, err)["brandId"])

	_, err = f.vehicles.Create(context.Background(), gtrInput("not-a-uuid"))
	assert.ErrorIs(t, err, application.ErrValidation)
	assert.Equal(t, "must be a valid id", fieldsOf(t, err)["brandId"])
}

func TestVehicleCreate_NegativeSpecs(t *testing.T) {
	f := newFixture(t)
	b := newBrand(t, f)
	in := gtrInput(b.ID)
	in.Specs.Horsepower = -1

	_, err := f.vehicles.Create(context.Background(), in)
	assert.ErrorIs(t, err, application.ErrValidation)
	assert.Contains(t, fieldsOf(t, err), "specs.horsepower")
}

func TestVehicleDelete_Missing(t *testing.T) {
	f := newFixture(t)
	b := newBrand(t, f)
	_, err := f.vehicles.Create(context.Background(), gtrInput(b.ID))
	require.NoError(t, err)

	_, err = f.vehicles.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, application.ErrVehicleNotFound)

	list, err := f.vehicles.List(context.Background(), repository.VehicleFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestVehicleList_FilterByBrand(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := newBrand(t, f)
	other := apexInput()
	other.Name = "QuantumDrive"
	q, err := f.brands.Create(ctx, other)
	require.NoError(t, err)

	_, err = f.vehicles.Create(ctx, gtrInput(a.ID))
	require.NoError(t, err)
	x1 := gtrInput(q.ID)
	x1.Name = "QuantumDrive X1"
	_, err = f.vehicles.Create(ctx, x1)
	require.NoError(t, err)

	list, err := f.vehicles.List(ctx, repository.VehicleFilter{BrandID: q.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "QuantumDrive X1", list[0].Name)
}

func TestVehicleUpdate_Replaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := newBrand(t, f)
	v, err := f.vehicles.Create(ctx, gtrInput(b.ID))
	require.NoError(t, err)

	in := gtrInput(b.ID)
	in.BasePrice = 99000
	got, err := f.vehicles.Update(ctx, v.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 99000.0, got.Price)
	assert.Equal(t, v.CreatedAt, got.CreatedAt)

	_, err = f.vehicles.Update(ctx, "missing", in)
	assert.ErrorIs(t, err, application.ErrVehicleNotFound)
}

func TestVehicleSearch_StoreFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := newBrand(t, f)
	_, err := f.vehicles.Create(ctx, gtrInput(b.ID))
	require.NoError(t, err)

	hits, err := f.vehicles.Search(ctx, "twin-turbo")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Apex GT-R", hits[0].Name)

	hits, err = f.vehicles.Search(ctx, "diesel")
	require.NoError(t, err)
	assert.Empty(t, hits)

	_, err = f.vehicles.Search(ctx, "   ")
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestVehicleSearch_UsesIndex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	idx := &fakeIndex{}
	f.vehicles.Index = idx
	b := newBrand(t, f)

	v, err := f.vehicles.Create(ctx, gtrInput(b.ID))
	require.NoError(t, err)
	assert.Equal(t, "Apex Motors", idx.docs[v.ID])

	idx.hits = []string{"stale-id", v.ID}
	hits, err := f.vehicles.Search(ctx, "anything")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, v.ID, hits[0].ID)

	idx.err = errors.New("index down")
	hits, err = f.vehicles.Search(ctx, "apex")
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	_, err = f.vehicles.Delete(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{v.ID}, idx.deleted)
}

func TestVehicleReindex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := newBrand(t, f)
	_, err := f.vehicles.Create(ctx, gtrInput(b.ID))
	require.NoError(t, err)

	n, err := f.vehicles.Reindex(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	idx := &fakeIndex{}
	f.vehicles.Index = idx
	n, err = f.vehicles.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, idx.docs, 1)
}
