package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/interface/middleware"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
	"github.com/oksasatya/autoforge-api/pkg/response"
)

type AuthHandler struct {
	ErrorWriter
	Svc     *application.AuthService
	Cookies *helpers.Cookies
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Cookies, errs ErrorWriter) *AuthHandler {
	return &AuthHandler{ErrorWriter: errs, Svc: svc, Cookies: cookies}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in application.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadPayload(c, err)
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "User registered successfully", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in application.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadPayload(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		h.Write(c, err)
		return
	}
	if h.Cookies != nil {
		h.Cookies.SetToken(c, res.Token, res.ExpiresAt)
	}
	response.Success(c, http.StatusOK, res, "Login successful", nil)
}

// Me returns the user behind the authenticated principal.
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		h.Write(c, application.ErrUnauthorized)
		return
	}
	u, err := h.Svc.CurrentUser(c.Request.Context(), p)
	if err != nil {
		h.Write(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "", nil)
}
