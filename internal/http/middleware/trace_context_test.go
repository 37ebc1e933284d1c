package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/observability"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/ctxutil"
)

func TestAttachTraceContextPropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	var seen *ctxutil.TraceData
	r.GET("/x", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen == nil || seen.RequestID != "req-42" || seen.TraceID == "" {
		t.Fatalf("trace data: %+v", seen)
	}
	if got := rec.Header().Get(headerRequestID); got != "req-42" {
		t.Fatalf("response request id: want=req-42 got=%q", got)
	}
	if rec.Header().Get(headerTraceID) != seen.TraceID {
		t.Fatalf("trace id header mismatch")
	}
}

func TestAttachTraceContextTagsSpanWithCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))

	r := gin.New()
	r.Use(otelgin.Middleware("skill-sculptor-test", otelgin.WithTracerProvider(tp)))
	r.Use(AttachTraceContext())
	r.GET("/api/roadmap/:id", func(c *gin.Context) {
		// Stands in for RequireAuth.
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: "u1"}))
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/roadmap/rm-1", nil)
	req.Header.Set(headerRequestID, "req-7")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	ended := spans.Ended()
	if len(ended) != 1 {
		t.Fatalf("spans: want=1 got=%d", len(ended))
	}
	attrs := map[attribute.Key]string{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	if attrs[observability.AttrUserID] != "u1" {
		t.Fatalf("user id attribute: want=u1 got=%q", attrs[observability.AttrUserID])
	}
	if attrs[observability.AttrRoadmapID] != "rm-1" {
		t.Fatalf("roadmap id attribute: want=rm-1 got=%q", attrs[observability.AttrRoadmapID])
	}
	if attrs[observability.AttrRequestID] != "req-7" {
		t.Fatalf("request id attribute: want=req-7 got=%q", attrs[observability.AttrRequestID])
	}
	if ended[0].Status().Code != codes.Error {
		t.Fatalf("span status: want=Error got=%v", ended[0].Status().Code)
	}
	if got, want := rec.Header().Get(headerTraceID), ended[0].SpanContext().TraceID().String(); got != want {
		t.Fatalf("trace id header: want=%s got=%s", want, got)
	}
}
