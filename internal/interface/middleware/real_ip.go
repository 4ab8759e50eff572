package middleware

import "github.com/gin-gonic/gin"

// ForwardedHeaders are read, in order, when the direct peer is a trusted proxy.
var ForwardedHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// TrustProxies makes c.ClientIP honour ForwardedHeaders only for requests
// arriving from one of proxies (IPs or CIDRs). With no proxies every request
// is keyed on its socket address, so a client cannot pick its own IP.
func TrustProxies(engine *gin.Engine, proxies []string) error {
	engine.ForwardedByClientIP = true
	engine.RemoteIPHeaders = ForwardedHeaders
	if len(proxies) == 0 {
		proxies = nil
	}
	return engine.SetTrustedProxies(proxies)
}

// RealIP sets the client IP into Gin context (key: "real_ip").
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}
