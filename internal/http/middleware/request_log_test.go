package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ShaikhHussain06/Skill-sculptor/internal/http/response"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/apierr"
	"github.com/ShaikhHussain06/Skill-sculptor/internal/platform/logger"
)

func TestRequestLoggerRecordsErrorCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)

	r := gin.New()
	r.Use(AttachTraceContext(), RequestLogger(logger.FromCore(core)))
	r.GET("/api/roadmap/:id", func(c *gin.Context) {
		response.RespondErr(c, apierr.Internal("save roadmap", errors.New("disk full")))
	})
	r.GET("/healthcheck", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/api/roadmap/rm-9", nil)
	req.Header.Set(headerRequestID, "req-1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries: want=2 got=%d", len(entries))
	}
	failed := entries[0]
	if failed.Level != zap.ErrorLevel || failed.Message != "request failed" {
		t.Fatalf("failed entry: level=%v msg=%q", failed.Level, failed.Message)
	}
	fields := failed.ContextMap()
	if fields["route"] != "/api/roadmap/:id" || fields["roadmap_id"] != "rm-9" || fields["request_id"] != "req-1" {
		t.Fatalf("fields: %v", fields)
	}
	if fields["error_code"] != apierr.CodeInternal {
		t.Fatalf("error_code: want=%s got=%v", apierr.CodeInternal, fields["error_code"])
	}
	if msg, _ := fields["error"].(string); !strings.Contains(msg, "disk full") {
		t.Fatalf("error cause not logged: %v", fields["error"])
	}
	if entries[1].Level != zap.DebugLevel {
		t.Fatalf("healthcheck should log at debug, got %v", entries[1].Level)
	}
}
