package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/autoforge-api/internal/application"
	repo "github.com/oksasatya/autoforge-api/internal/domain/repository"
	"github.com/oksasatya/autoforge-api/pkg/response"
)

// multipart framing allowance on top of the model size cap
const uploadOverhead = 1 << 20

type VehicleHandler struct {
	ErrorWriter
	Svc     *application.VehicleService
	Uploads *application.UploadService
}

func NewVehicleHandler(svc *application.VehicleService, uploads *application.UploadService, errs ErrorWriter) *VehicleHandler {
	return &VehicleHandler{ErrorWriter: errs, Svc: svc, Uploads: uploads}
}

type vehicleQuery struct {
	BrandID string `form:"brandId" binding:"omitempty,uuid"`
}

func (h *VehicleHandler) List(c *gin.Context) {
	var q vehicleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadPayload(c, err)
		return
	}
	vehicles, err := h.Svc.List(c.Request.Context(), repo.VehicleFilter{BrandID: q.BrandID})
	if err != nil {
		h.Write(c, err)
		return
	}
	response.List(c, vehicles, "")
}

func (h *VehicleHandler) Search(c *gin.Context) {
	vehicles, err := h.Svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Write(c, err)
		return
	}
	response.List(c, vehicles, "")
}

func (h *VehicleHandler) Get(c *gin.Context) {
	v, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "", nil)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var in application.VehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadPayload(c, err)
		return
	}
	v, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, v, "Vehicle created successfully", nil)
}

func (h *VehicleHandler) Update(c *gin.Context) {
	var in application.VehicleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadPayload(c, err)
		return
	}
	v, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "Vehicle updated successfully", nil)
}

func (h *VehicleHandler) Delete(c *gin.Context) {
	v, err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, v, "Vehicle deleted successfully", nil)
}

// Upload stores a single .glb/.gltf file sent as multipart field "model".
func (h *VehicleHandler) Upload(c *gin.Context) {
	if h.Uploads.MaxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Uploads.MaxSize+uploadOverhead)
	}
	fh, err := c.FormFile("model")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error[any](c, http.StatusBadRequest, "Invalid input", map[string]string{
				"model": fmt.Sprintf("file exceeds %d bytes", h.Uploads.MaxSize),
			})
			return
		}
		response.Error[any](c, http.StatusBadRequest, "No file uploaded", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.Write(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	res, err := h.Uploads.Upload(c.Request.Context(), fh.Filename, fh.Size, f)
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Model uploaded successfully", nil)
}
