package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/autoforge-api/internal/application"
	"github.com/oksasatya/autoforge-api/internal/domain/entity"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
	"github.com/oksasatya/autoforge-api/pkg/response"
)

const principalKey = "principal"

// TokenVerifier turns a raw session token into a principal.
type TokenVerifier interface {
	Verify(token string) (application.Principal, error)
}

// BearerToken reads "Authorization: Bearer <token>", falling back to the
// access_token cookie.
func BearerToken(c *gin.Context) string {
	if h := strings.TrimSpace(c.GetHeader("Authorization")); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	if token, err := c.Cookie(helpers.AccessTokenCookie); err == nil {
		return token
	}
	return ""
}

// Authenticate verifies the session token and stores the principal in the
// Gin context. Every failure is the same 401.
func Authenticate(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := v.Verify(BearerToken(c))
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, application.ErrUnauthorized.Error(), nil)
			return
		}
		c.Set(principalKey, p)
		c.Set("userID", p.UserID) // used by KeyByUserID
		c.Next()
	}
}

// Authorize requires an exact role. It never authenticates; mount it after Authenticate.
func Authorize(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p *application.Principal
		if got, ok := PrincipalFrom(c); ok {
			p = &got
		}
		err := application.Authorize(p, role)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, application.ErrForbidden):
			response.Error[any](c, http.StatusForbidden, "role '"+p.Role.String()+"' is not allowed to access this route", nil)
		default:
			response.Error[any](c, http.StatusUnauthorized, application.ErrUnauthorized.Error(), nil)
		}
	}
}

// PrincipalFrom returns the principal stored by Authenticate.
func PrincipalFrom(c *gin.Context) (application.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return application.Principal{}, false
	}
	p, ok := v.(application.Principal)
	return p, ok
}
