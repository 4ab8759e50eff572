package application_test

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/infrastructure/memory"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
)

type fixture struct {
	store     *memory.Store
	auth      *application.AuthService
	brands    *application.BrandService
	vehicles  *application.VehicleService
	assets    *application.AssetService
	analytics *application.AnalyticsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return &fixture{
		store:     store,
		auth:      application.NewAuthService(store.Users(), jwt, bcrypt.MinCost, nil),
		brands:    application.NewBrandService(store.Brands(), nil),
		vehicles:  application.NewVehicleService(store.Vehicles(), store.Brands(), nil, nil),
		assets:    application.NewAssetService(store.Assets(), store.Vehicles(), nil),
		analytics: application.NewAnalyticsService(store.Analytics()),
	}
}

func apexInput() application.BrandInput {
	return application.BrandInput{
		Name:        "Apex Motors",
		Description: "Premium performance vehicles",
		Founded:     2010,
		Country:     "USA",
	}
}

func gtrInput(brandID string) application.VehicleInput {
	return application.VehicleInput{
		Name:         "Apex GT-R",
		BrandID:      brandID,
		VehicleModel: "GT-R Premium",
		Year:         2024,
		BasePrice:    89000,
		Description:  "Twin-turbo supercar",
		Engine:       "Twin-Turbo V6",
	}
}
