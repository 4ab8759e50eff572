package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/internal/domain/repository"
	"github.com/oksasatya/autoforge-api/internal/infrastructure/memory"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
)

func services(store *memory.Store) Services {
	return Services{
		Auth:     application.NewAuthService(store.Users(), helpers.NewJWTManager("s", time.Hour), 4, nil),
		Brands:   application.NewBrandService(store.Brands(), nil),
		Vehicles: application.NewVehicleService(store.Vehicles(), store.Brands(), nil, nil),
		Assets:   application.NewAssetService(store.Assets(), store.Vehicles(), nil),
	}
}

func TestRun(t *testing.T) {
	store := memory.NewStore()
	svc := services(store)
	ctx := context.Background()

	sum, err := Run(ctx, svc, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{Users: 2, Brands: 4, Vehicles: 4, Assets: 8}, sum)

	res, err := svc.Auth.Login(ctx, application.LoginInput{Email: "admin@autoforge.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)

	assets, err := svc.Assets.List(ctx, repository.AssetFilter{})
	require.NoError(t, err)
	byName := map[string]entity.AssetView{}
	for _, a := range assets {
		byName[a.Name] = a
	}
	assert.Len(t, byName["Premium Leather Interior"].CompatibleVehicles, 4)
	assert.Len(t, byName["21-inch Carbon Fiber Wheels"].CompatibleVehicles, 2)
}

func TestRun_NotIdempotent(t *testing.T) {
	store := memory.NewStore()
	_, err := Run(context.Background(), services(store), nil)
	require.NoError(t, err)

	_, err = Run(context.Background(), services(store), nil)
	assert.ErrorIs(t, err, application.ErrDuplicateEmail)
}
