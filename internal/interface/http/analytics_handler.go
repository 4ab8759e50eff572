package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/pkg/response"
)

type AnalyticsHandler struct {
	ErrorWriter
	Svc *application.AnalyticsService
}

func NewAnalyticsHandler(svc *application.AnalyticsService, errs ErrorWriter) *AnalyticsHandler {
	return &AnalyticsHandler{ErrorWriter: errs, Svc: svc}
}

func (h *AnalyticsHandler) Metrics(c *gin.Context) {
	m, err := h.Svc.Metrics(c.Request.Context())
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, m, "", nil)
}

func (h *AnalyticsHandler) Breakdown(c *gin.Context) {
	b, err := h.Svc.Breakdown(c.Request.Context())
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "", nil)
}
