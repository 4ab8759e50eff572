package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/pkg/helpers"
	"github.com/oksasatya/autoforge-api/pkg/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// DBReady answers 503 when the store cannot be reached. The store reconnects
// on its own, so the next request tries again.
func DBReady(store Pinger, logger *logrus.Logger, exposeErr bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			helpers.LogError(logger, "database connection error", err, logrus.Fields{"path": c.Request.URL.Path})
			var detail any
			if exposeErr {
				detail = err.Error()
			}
			response.Error[any](c, http.StatusServiceUnavailable, "Database connection error", detail)
			return
		}
		c.Next()
	}
}
