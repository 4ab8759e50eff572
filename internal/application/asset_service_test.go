package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
)

func TestAssetCreate_ExpandsCompatibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := newBrand(t, f)
	v, err := f.vehicles.Create(ctx, gtrInput(b.ID))
	require.NoError(t, err)
	gone, err := f.vehicles.Create(ctx, gtrInput(b.ID))
	require.NoError(t, err)
	_, err = f.vehicles.Delete(ctx, gone.ID)
	require.NoError(t, err)

	a, err := f.assets.Create(ctx, application.AssetInput{
		Name:          "Sport Suspension Kit",
		Category:      "Performance",
		Price:         4500,
		Compatibility: []string{v.ID, gone.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CategoryPerformance, a.Category)
	assert.Equal(t, entity.DefaultAssetImage, a.Image)
	assert.Equal(t, []string{v.ID, gone.ID}, a.Compatibility)
	require.Len(t, a.CompatibleVehicles, 1)
	assert.Equal(t, v.ID, a.CompatibleVehicles[0].ID)
}

func TestAssetCreate_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.assets.Create(context.Background(), application.AssetInput{
		Name:          "X",
		Category:      "spoilers",
		Price:         -1,
		Compatibility: []string{"nope"},
	})
	assert.ErrorIs(t, err, application.ErrValidation)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "compatibility[0]")
}

func TestAssetListByCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, in := range []application.AssetInput{
		{Name: "Metallic Sapphire Blue", Category: entity.CategoryPaint, Price: 2500},
		{Name: "Carbon Black Pearl", Category: entity.CategoryPaint, Price: 3000},
		{Name: "Premium Leather Interior", Category: entity.CategoryInterior, Price: 8000},
	} {
		_, err := f.assets.Create(ctx, in)
		require.NoError(t, err)
	}

	paint, err := f.assets.ListByCategory(ctx, "PAINT")
	require.NoError(t, err)
	assert.Len(t, paint, 2)

	all, err := f.assets.List(ctx, repository.AssetFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.assets.ListByCategory(ctx, "spoilers")
	assert.ErrorIs(t, err, application.ErrInvalidInput)
	assert.Contains(t, fieldsOf(t, err), "category")
}

func TestAssetUpdateDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.assets.Create(ctx, application.AssetInput{Name: "ECU Tune", Category: entity.CategoryPerformance, Price: 3200})
	require.NoError(t, err)

	got, err := f.assets.Update(ctx, a.ID, application.AssetInput{Name: "ECU Tune Stage 2", Category: entity.CategoryPerformance, Price: 4200})
	require.NoError(t, err)
	assert.Equal(t, 4200.0, got.Price)
	assert.Equal(t, []string{}, got.Compatibility)

	deleted, err := f.assets.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "ECU Tune Stage 2", deleted.Name)

	_, err = f.assets.GetByID(ctx, a.ID)
	assert.EqualError(t, err, "asset not found")
	_, err = f.assets.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, application.ErrAssetNotFound)
}
