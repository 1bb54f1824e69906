package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/observability"
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := routeOf(c)
		method := c.Request.Method

		observability.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		observability.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
