package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/domain/entity"
)

func TestBrandCreate_SyncsFoundedYear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.brands.Create(ctx, apexInput())
	require.NoError(t, err)
	assert.Equal(t, 2010, b.Founded)
	assert.Equal(t, 2010, b.FoundedYear)
	assert.Equal(t, entity.DefaultBrandLogo, b.Logo)

	in := apexInput()
	in.Name = "Velocity Dynamics"
	in.Founded, in.FoundedYear = 0, 2008
	v, err := f.brands.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2008, v.Founded)
	assert.Equal(t, 2008, v.FoundedYear)
}

func TestBrandCreate_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.brands.Create(context.Background(), application.BrandInput{Name: " A ", Description: "short", Founded: 1700})
	assert.ErrorIs(t, err, application.ErrValidation)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "founded")
	assert.Equal(t, "is required", fields["country"])
}

func TestBrandCreate_DuplicateName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.brands.Create(ctx, apexInput())
	require.NoError(t, err)
	_, err = f.brands.Create(ctx, apexInput())
	assert.ErrorIs(t, err, application.ErrDuplicateName)

	list, err := f.brands.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBrandUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.brands.Create(ctx, apexInput())
	require.NoError(t, err)
	other := apexInput()
	other.Name = "EliteForge"
	_, err = f.brands.Create(ctx, other)
	require.NoError(t, err)

	in := apexInput()
	in.Country = "Canada"
	got, err := f.brands.Update(ctx, a.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Canada", got.Country)
	assert.Equal(t, a.CreatedAt, got.CreatedAt)

	in.Name = "EliteForge"
	_, err = f.brands.Update(ctx, a.ID, in)
	assert.ErrorIs(t, err, application.ErrDuplicateName)

	_, err = f.brands.Update(ctx, "missing", apexInput())
	assert.ErrorIs(t, err, application.ErrBrandNotFound)
}

func TestBrandDelete_KeepsVehicles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.brands.Create(ctx, apexInput())
	require.NoError(t, err)
	v, err := f.vehicles.Create(ctx, gtrInput(b.ID))
	require.NoError(t, err)

	deleted, err := f.brands.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, deleted.ID)

	_, err = f.brands.GetByID(ctx, b.ID)
	assert.EqualError(t, err, "brand not found")

	got, err := f.vehicles.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Brand)
	assert.Equal(t, b.ID, got.BrandID)
}

func TestBrandList_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"Apex Motors", "Velocity Dynamics", "QuantumDrive"} {
		in := apexInput()
		in.Name = name
		_, err := f.brands.Create(ctx, in)
		require.NoError(t, err)
	}

	list, err := f.brands.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "QuantumDrive", list[0].Name)
	assert.Equal(t, "Apex Motors", list[2].Name)
}
