package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie carries the session token for browser clients that do
// not send an Authorization header.
const AccessTokenCookie = "access_token"

// Cookies writes the session cookie. It is HttpOnly and lives as long as the token.
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func NewCookies(domain string, secure bool) *Cookies {
	return &Cookies{Domain: domain, Secure: secure, SameSite: http.SameSiteLaxMode}
}

func (k *Cookies) SetToken(c *gin.Context, token string, exp time.Time) {
	maxAge := int(time.Until(exp) / time.Second)
	if maxAge <= 0 {
		return
	}
	c.SetSameSite(k.SameSite)
	c.SetCookie(AccessTokenCookie, token, maxAge, "/", k.Domain, k.Secure, true)
}
