package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/autoforge-api/internal/container"
	handlers "github.com/oksasatya/autoforge-api/internal/interface/http"
	"github.com/oksasatya/autoforge-api/internal/interface/middleware"
)

// AuthModule serves /auth. Register and login are rate limited per IP and route.
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Verifier middleware.TokenVerifier
}

func NewAuthModule(h *handlers.AuthHandler, v middleware.TokenVerifier) *AuthModule {
	return &AuthModule{Handler: h, Verifier: v}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	auth := rg.Group("/auth")
	auth.POST("/register", registerLimiter, m.Handler.Register)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.GET("/me", middleware.Authenticate(m.Verifier), m.Handler.Me)
}
