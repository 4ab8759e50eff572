package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
	"github.com/oksasatya/autoforge-api/pkg/response"
	"github.com/oksasatya/autoforge-api/pkg/validation"
)

// ErrorWriter maps service errors to HTTP responses. Internal details are
// only sent when ExposeInternal is set (development).
type ErrorWriter struct {
	Logger         *logrus.Logger
	ExposeInternal bool
}

func (w ErrorWriter) Write(c *gin.Context, err error) {
	var fe *application.FieldError
	switch {
	case errors.As(err, &fe) && errors.Is(err, application.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, "Validation failed", fe.Fields)
	case errors.As(err, &fe):
		response.Error[any](c, http.StatusBadRequest, "Invalid input", fe.Fields)
	case errors.Is(err, application.ErrDuplicateEmail):
		response.Error[any](c, http.StatusBadRequest, "User with this email already exists", nil)
	case errors.Is(err, application.ErrDuplicateName):
		response.Error[any](c, http.StatusBadRequest, "Brand with this name already exists", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrUnauthorized):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrStoreUnavailable):
		w.log(c, err, "store unavailable")
		response.Error[any](c, http.StatusServiceUnavailable, "Database connection error", w.detail(err))
	default:
		w.log(c, err, "request failed")
		response.Error[any](c, http.StatusInternalServerError, "Internal server error", w.detail(err))
	}
}

// BadPayload answers 400 for a body or query that could not be bound.
func (w ErrorWriter) BadPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "Invalid input", validation.ToDetails(err))
}

func (w ErrorWriter) detail(err error) any {
	if w.ExposeInternal {
		return err.Error()
	}
	return nil
}

func (w ErrorWriter) log(c *gin.Context, err error, msg string) {
	helpers.LogError(w.Logger, msg, err, logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	})
}
