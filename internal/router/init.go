package router

import (
	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/container"
	"github.com/oksasatya/autoforge-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/autoforge-api/internal/interface/http"
	"github.com/oksasatya/autoforge-api/internal/interface/middleware"
	"github.com/oksasatya/autoforge-api/internal/router/modules"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
)

// Services groups the application services built from the container.
type Services struct {
	Auth      *application.AuthService
	Brands    *application.BrandService
	Vehicles  *application.VehicleService
	Assets    *application.AssetService
	Analytics *application.AnalyticsService
	Uploads   *application.UploadService
}

// BuildServices wires the services over the container's store and optional integrations.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	store := container.GetStore()

	auth := application.NewAuthService(store.Users(), container.GetJWT(), cfg.BcryptCost, logger)
	if pub := container.GetMailPublisher(); pub != nil {
		auth.Mail = pub
		auth.Welcome = application.WelcomeEmail{
			AppName:     cfg.AppName,
			CompanyName: cfg.CompanyName,
			LoginURL:    cfg.FrontendURL + "/login",
			SupportURL:  cfg.SupportURL,
		}
	}

	var index application.VehicleIndexer
	if es := container.GetES(); es != nil {
		index = search.NewVehicleIndex(es, cfg.ESVehiclesIndex)
	}

	return Services{
		Auth:      auth,
		Brands:    application.NewBrandService(store.Brands(), logger),
		Vehicles:  application.NewVehicleService(store.Vehicles(), store.Brands(), index, logger),
		Assets:    application.NewAssetService(store.Assets(), store.Vehicles(), logger),
		Analytics: application.NewAnalyticsService(store.Analytics()),
		Uploads:   application.NewUploadService(container.GetModelStorage(), cfg.MaxFileSize, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry.
// It returns the services the modules were built on.
func InitModules(r *Registry) Services {
	cfg := container.GetConfig()
	svc := BuildServices()
	errs := handlers.ErrorWriter{Logger: container.GetLogger(), ExposeInternal: cfg.IsDevelopment()}
	cookies := helpers.NewCookies(cfg.CookieDomain, cfg.CookieSecure)

	health := handlers.NewHealthHandler(cfg.AppName)
	r.Engine.GET("/", health.Root)
	r.Engine.NoRoute(health.NotFound)

	// Health and metrics answer even when the store is down.
	r.AddPublic(modules.NewHealthModule(health))
	if cfg.DebugMetricsEnabled {
		r.AddPublic(modules.NewDebugModule())
	}

	r.Use(middleware.DBReady(container.GetStore(), container.GetLogger(), cfg.IsDevelopment()))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, cookies, errs), svc.Auth))
	r.Add(modules.NewBrandModule(handlers.NewBrandHandler(svc.Brands, errs), svc.Auth))
	r.Add(modules.NewVehicleModule(handlers.NewVehicleHandler(svc.Vehicles, svc.Uploads, errs), svc.Auth))
	r.Add(modules.NewAssetModule(handlers.NewAssetHandler(svc.Assets, errs), svc.Auth))
	r.Add(modules.NewAnalyticsModule(handlers.NewAnalyticsHandler(svc.Analytics, errs), svc.Auth))
	return svc
}
