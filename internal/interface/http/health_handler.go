package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/autoforge-api/pkg/response"
)

const APIVersion = "1.0.0"

type HealthHandler struct {
	AppName string
}

func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{AppName: appName}
}

// Root describes the API and its top-level endpoints.
func (h *HealthHandler) Root(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"name":    h.AppName,
		"version": APIVersion,
		"endpoints": gin.H{
			"auth":      "/api/auth",
			"brands":    "/api/brands",
			"vehicles":  "/api/vehicles",
			"assets":    "/api/assets",
			"analytics": "/api/analytics",
			"health":    "/api/health",
		},
	}, "Car Customization Platform API", nil)
}

func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"time": time.Now().UTC()}, "API is running", nil)
}

// NotFound is the fallback for unmatched routes.
func (h *HealthHandler) NotFound(c *gin.Context) {
	response.Error[any](c, http.StatusNotFound, "Route "+c.Request.URL.Path+" not found", nil)
}
