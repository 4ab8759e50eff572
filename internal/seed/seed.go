// Package seed loads the demo catalog through the application services so
// seeded records pass the same validation as API writes.
package seed

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
)

// Services are the writers the seed needs.
type Services struct {
	Auth     *application.AuthService
	Brands   *application.BrandService
	Vehicles *application.VehicleService
	Assets   *application.AssetService
}

// Summary counts what Run created.
type Summary struct {
	Users    int
	Brands   int
	Vehicles int
	Assets   int
}

var users = []application.RegisterInput{
	{Email: "admin@autoforge.com", Password: "admin123", Name: "Admin User", Role: entity.RoleAdmin},
	{Email: "client@example.com", Password: "client123", Name: "Demo Client", Role: entity.RoleClient},
}

var brands = []application.BrandInput{
	{Name: "Apex Motors", Logo: "🏛️", Description: "Premium performance vehicles with cutting-edge technology", Founded: 2010, Country: "USA"},
	{Name: "Velocity Dynamics", Logo: "⚡", Description: "High-speed racing and luxury sports cars", Founded: 2008, Country: "Germany"},
	{Name: "EliteForge", Logo: "🔧", Description: "Handcrafted luxury vehicles for discerning collectors", Founded: 2012, Country: "Italy"},
	{Name: "QuantumDrive", Logo: "🚀", Description: "Next-generation electric vehicles and autonomous technology", Founded: 2015, Country: "Sweden"},
}

// vehicles are indexed by position against brands.
var vehicles = []application.VehicleInput{
	{
		Name: "Apex GT-R", VehicleModel: "GT-R Premium", Year: 2024, BasePrice: 89000,
		ModelURL: "/models/apex-gt-r.glb", Thumbnail: "🏎️",
		Description: "Ultra-high-performance supercar with 800hp twin-turbocharged engine",
		Engine:      "Twin-Turbo V6", Horsepower: 800, Torque: 700, Acceleration: 2.8, TopSpeed: 205,
		Specs: entity.VehicleSpecs{Engine: "Twin-Turbo V6", Horsepower: 800, Torque: 700, ZeroToSixty: 2.8},
	},
	{
		Name: "Velocity RS", VehicleModel: "RS Sport", Year: 2024, BasePrice: 95000,
		ModelURL: "/models/velocity-rs.glb", Thumbnail: "🏁",
		Description: "Track-focused racing vehicle with aerodynamic design",
		Engine:      "Flat-Plane V8", Horsepower: 850, Torque: 750, Acceleration: 2.7, TopSpeed: 220,
		Specs: entity.VehicleSpecs{Engine: "Flat-Plane V8", Horsepower: 850, Torque: 750, ZeroToSixty: 2.7},
	},
	{
		Name: "EliteForge Classico", VehicleModel: "Classico Limited", Year: 2024, BasePrice: 125000,
		ModelURL: "/models/elite-classico.glb", Thumbnail: "👑",
		Description: "Handcrafted masterpiece combining classic elegance with modern technology",
		Engine:      "Naturally Aspirated V12", Horsepower: 620, Torque: 580, Acceleration: 3.5, TopSpeed: 195,
		Specs: entity.VehicleSpecs{Engine: "Naturally Aspirated V12", Horsepower: 620, Torque: 580, ZeroToSixty: 3.5},
	},
	{
		Name: "QuantumDrive X1", VehicleModel: "X1 Autonomous", Year: 2024, BasePrice: 78000,
		ModelURL: "/models/quantum-x1.glb", Thumbnail: "⚙️",
		Description: "Electric vehicle with Level 3 autonomous capabilities",
		Engine:      "Electric Motor Quad-Rotor", Horsepower: 600, Torque: 1000, Acceleration: 3.2, TopSpeed: 180,
		Specs: entity.VehicleSpecs{Engine: "Electric Motor Quad-Rotor", Horsepower: 600, Torque: 1000, ZeroToSixty: 3.2},
	},
}

type assetSeed struct {
	input application.AssetInput
	fits  []int // positions in vehicles; nil means every vehicle
}

var assets = []assetSeed{
	{application.AssetInput{Name: "Metallic Sapphire Blue", Category: entity.CategoryPaint, Description: "Premium metallic paint with depth and luster", Price: 2500, Image: "🔵"}, nil},
	{application.AssetInput{Name: "Carbon Black Pearl", Category: entity.CategoryPaint, Description: "Deep black with subtle pearl finish", Price: 3000, Image: "⚫"}, []int{0, 1, 2}},
	{application.AssetInput{Name: "20-inch Forged Titanium Wheels", Category: entity.CategoryWheels, Description: "Ultra-lightweight forged wheels with directional design", Price: 5500, Image: "🛞"}, []int{0, 1, 3}},
	{application.AssetInput{Name: "21-inch Carbon Fiber Wheels", Category: entity.CategoryWheels, Description: "Premium carbon fiber construction for maximum performance", Price: 7200, Image: "⚫"}, []int{0, 2}},
	{application.AssetInput{Name: "Premium Leather Interior", Category: entity.CategoryInterior, Description: "Hand-stitched premium leather with ambient lighting", Price: 8000, Image: "🪑"}, nil},
	{application.AssetInput{Name: "Sport Suspension Kit", Category: entity.CategoryPerformance, Description: "Adjustable coilovers with motorsport heritage", Price: 4500, Image: "🔧"}, []int{0, 1}},
	{application.AssetInput{Name: "Carbon Fiber Body Kit", Category: entity.CategoryExterior, Description: "Complete aerodynamic enhancement package", Price: 12000, Image: "🏗️"}, []int{0, 1}},
	{application.AssetInput{Name: "ECU Tune Performance Package", Category: entity.CategoryPerformance, Description: "+50hp with custom ECU reprogramming", Price: 3200, Image: "💻"}, []int{0, 1, 3}},
}

// Run creates the demo users, brands, vehicles and assets. It expects an
// empty store; existing records with the same email or brand name fail it.
func Run(ctx context.Context, svc Services, logger *logrus.Logger) (Summary, error) {
	var sum Summary
	for _, u := range users {
		view, err := svc.Auth.CreateUser(ctx, u)
		if err != nil {
			return sum, fmt.Errorf("user %s: %w", u.Email, err)
		}
		helpers.LogInfo(logger, "seeded user", logrus.Fields{"email": view.Email, "role": view.Role})
		sum.Users++
	}

	brandIDs := make([]string, 0, len(brands))
	for _, b := range brands {
		view, err := svc.Brands.Create(ctx, b)
		if err != nil {
			return sum, fmt.Errorf("brand %s: %w", b.Name, err)
		}
		brandIDs = append(brandIDs, view.ID)
		sum.Brands++
	}

	vehicleIDs := make([]string, 0, len(vehicles))
	for i, v := range vehicles {
		v.BrandID = brandIDs[i]
		view, err := svc.Vehicles.Create(ctx, v)
		if err != nil {
			return sum, fmt.Errorf("vehicle %s: %w", v.Name, err)
		}
		vehicleIDs = append(vehicleIDs, view.ID)
		sum.Vehicles++
	}

	for _, a := range assets {
		in := a.input
		if a.fits == nil {
			in.Compatibility = append([]string{}, vehicleIDs...)
		} else {
			for _, i := range a.fits {
				in.Compatibility = append(in.Compatibility, vehicleIDs[i])
			}
		}
		if _, err := svc.Assets.Create(ctx, in); err != nil {
			return sum, fmt.Errorf("asset %s: %w", in.Name, err)
		}
		sum.Assets++
	}

	helpers.LogInfo(logger, "database seeded", logrus.Fields{
		"users": sum.Users, "brands": sum.Brands, "vehicles": sum.Vehicles, "assets": sum.Assets,
	})
	return sum, nil
}
