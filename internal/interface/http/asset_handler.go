package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	repo "github.com/oksasatya/autoforge-api/internal/domain/repository"
	"github.com/oksasatya/autoforge-api/pkg/response"
)

type AssetHandler struct {
	ErrorWriter
	Svc *application.AssetService
}

func NewAssetHandler(svc *application.AssetService, errs ErrorWriter) *AssetHandler {
	return &AssetHandler{ErrorWriter: errs, Svc: svc}
}

func (h *AssetHandler) List(c *gin.Context) {
	f := repo.AssetFilter{Category: entity.AssetCategory(c.Query("category"))}
	assets, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		h.Write(c, err)
		return
	}
	response.List(c, assets, "")
}

func (h *AssetHandler) ListByCategory(c *gin.Context) {
	assets, err := h.Svc.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.Write(c, err)
		return
	}
	response.List(c, assets, "")
}

func (h *AssetHandler) Get(c *gin.Context) {
	a, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "", nil)
}

func (h *AssetHandler) Create(c *gin.Context) {
	var in application.AssetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadPayload(c, err)
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "Asset created successfully", nil)
}

func (h *AssetHandler) Update(c *gin.Context) {
	var in application.AssetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadPayload(c, err)
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "Asset updated successfully", nil)
}

func (h *AssetHandler) Delete(c *gin.Context) {
	a, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "Asset deleted successfully", nil)
}
