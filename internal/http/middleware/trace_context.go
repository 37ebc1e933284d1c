package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/observability"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// AttachTraceContext stores request and trace ids as ctxutil.TraceData and
// echoes them on the response. Once the handler chain returns it tags the
// active span with the authenticated user and the roadmap in the path.
func AttachTraceContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		td := &ctxutil.TraceData{
			RequestID: headerOr(c, headerRequestID, uuid.NewString),
			TraceID: headerOr(c, headerTraceID, func() string {
				if sc := span.SpanContext(); sc.HasTraceID() {
					return sc.TraceID().String()
				}
				return uuid.NewString()
			}),
		}
		c.Request = c.Request.WithContext(ctxutil.WithTraceData(c.Request.Context(), td))
		c.Header(headerTraceID, td.TraceID)
		c.Header(headerRequestID, td.RequestID)
		span.SetAttributes(observability.AttrRequestID.String(td.RequestID))

		c.Next()

		annotateSpan(c, span)
	}
}

func headerOr(c *gin.Context, name string, gen func() string) string {
	if v := strings.TrimSpace(c.GetHeader(name)); v != "" {
		return v
	}
	return gen()
}

// annotateSpan runs after auth and routing, when identity is known.
func annotateSpan(c *gin.Context, span trace.Span) {
	if !span.IsRecording() {
		return
	}
	if uid := ctxutil.UserID(c.Request.Context()); uid != "" {
		span.SetAttributes(observability.AttrUserID.String(uid))
	}
	if id := c.Param("id"); id != "" {
		span.SetAttributes(observability.AttrRoadmapID.String(id))
	}
	if status := c.Writer.Status(); status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
