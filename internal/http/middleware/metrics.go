package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/observability"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/apierr"
)

const metricsRoute = "/metrics"

// Metrics records request counts and latency by route template, plus error
// responses by apierr code. Scrapes of /metrics are not counted.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || c.FullPath() == metricsRoute {
			c.Next()
			return
		}
		m.ApiInflightInc()
		defer m.ApiInflightDec()
		start := time.Now()
		c.Next()

		route := c.FullPath()
		m.ObserveAPI(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
		if last := c.Errors.Last(); last != nil {
			m.ObserveAPIError(route, apierr.CodeOf(last.Err))
		}
	}
}
