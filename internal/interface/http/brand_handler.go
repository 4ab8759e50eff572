package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/pkg/response"
)

type BrandHandler struct {
	ErrorWriter
	Svc *application.BrandService
}

func NewBrandHandler(svc *application.BrandService, errs ErrorWriter) *BrandHandler {
	return &BrandHandler{ErrorWriter: errs, Svc: svc}
}

func (h *BrandHandler) List(c *gin.Context) {
	brands, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Write(c, err)
		return
	}
	response.List(c, brands, "")
}

func (h *BrandHandler) Get(c *gin.Context) {
	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "", nil)
}

func (h *BrandHandler) Create(c *gin.Context) {
	var in application.BrandInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadPayload(c, err)
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b, "Brand created successfully", nil)
}

func (h *BrandHandler) Update(c *gin.Context) {
	var in application.BrandInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadPayload(c, err)
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "Brand updated successfully", nil)
}

func (h *BrandHandler) Delete(c *gin.Context) {
	b, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, b, "Brand deleted successfully", nil)
}
