package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/petfinder-backend/internal/pkg/httputil"
)

// Recovery turns a handler panic into a 500 with the standard error body.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			route := routeOf(c)
			observability.HTTPPanicsTotal.WithLabelValues(route).Inc()
			logger.Error("panic recovered",
				zap.Any("panic", rec),
				zap.String("route", route),
				zap.String("request_id", c.GetString(RequestIDKey)),
				zap.ByteString("stack", debug.Stack()),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			httputil.Abort(c, apperror.Internal(fmt.Errorf("panic: %v", rec)))
		}()
		c.Next()
	}
}

// routeOf is the matched route template, which keeps label cardinality
// bounded.
func routeOf(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unmatched"
}
