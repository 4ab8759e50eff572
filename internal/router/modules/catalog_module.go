package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/autoforge-api/internal/container"
	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	handlers "github.com/oksasatya/autoforge-api/internal/interface/http"
	"github.com/oksasatya/autoforge-api/internal/interface/middleware"
)

// adminOnly authenticates, requires the admin role and applies a per-user limit.
func adminOnly(v middleware.TokenVerifier) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.Authenticate(v),
		middleware.Authorize(entity.RoleAdmin),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	}
}

// BrandModule: reads are public, writes need an admin.
type BrandModule struct {
	Handler  *handlers.BrandHandler
	Verifier middleware.TokenVerifier
}

func NewBrandModule(h *handlers.BrandHandler, v middleware.TokenVerifier) *BrandModule {
	return &BrandModule{Handler: h, Verifier: v}
}

func (m *BrandModule) Register(rg *gin.RouterGroup) {
	brands := rg.Group("/brands")
	brands.GET("", m.Handler.List)
	brands.GET("/:id", m.Handler.Get)

	admin := brands.Group("", adminOnly(m.Verifier)...)
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}

type VehicleModule struct {
	Handler  *handlers.VehicleHandler
	Verifier middleware.TokenVerifier
}

func NewVehicleModule(h *handlers.VehicleHandler, v middleware.TokenVerifier) *VehicleModule {
	return &VehicleModule{Handler: h, Verifier: v}
}

func (m *VehicleModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	vehicles := rg.Group("/vehicles")
	vehicles.GET("", m.Handler.List)
	vehicles.GET("/search", searchLimiter, m.Handler.Search)
	vehicles.GET("/:id", m.Handler.Get)

	admin := vehicles.Group("", adminOnly(m.Verifier)...)
	{
		admin.POST("", m.Handler.Create)
		admin.POST("/upload", m.Handler.Upload)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}

type AssetModule struct {
	Handler  *handlers.AssetHandler
	Verifier middleware.TokenVerifier
}

func NewAssetModule(h *handlers.AssetHandler, v middleware.TokenVerifier) *AssetModule {
	return &AssetModule{Handler: h, Verifier: v}
}

func (m *AssetModule) Register(rg *gin.RouterGroup) {
	assets := rg.Group("/assets")
	assets.GET("", m.Handler.List)
	assets.GET("/category/:category", m.Handler.ListByCategory)
	assets.GET("/:id", m.Handler.Get)

	admin := assets.Group("", adminOnly(m.Verifier)...)
	{
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}

// AnalyticsModule is admin only.
type AnalyticsModule struct {
	Handler  *handlers.AnalyticsHandler
	Verifier middleware.TokenVerifier
}

func NewAnalyticsModule(h *handlers.AnalyticsHandler, v middleware.TokenVerifier) *AnalyticsModule {
	return &AnalyticsModule{Handler: h, Verifier: v}
}

func (m *AnalyticsModule) Register(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics", adminOnly(m.Verifier)...)
	analytics.GET("", m.Handler.Breakdown)
	analytics.GET("/metrics", m.Handler.Metrics)
}
