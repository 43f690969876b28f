package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerStoresTraceID(t *testing.T) {
	var gotTrace string
	handler := RequestLogger("demo")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTrace = TraceIDFromContext(r.Context())
		if LoggerFromContext(r.Context()) == nil {
			t.Error("expected request logger")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set(traceparentHeader, sampleTraceparent)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotTrace != "projects/demo/traces/ab42124a3c573678d4d8b21ba52df3bf" {
		t.Fatalf("unexpected trace id: %q", gotTrace)
	}
}

func TestRequestLoggerFallsBackToRequestID(t *testing.T) {
	var gotTrace string
	handler := RequestLogger("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTrace = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-42"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotTrace != "req-42" {
		t.Fatalf("expected request id as trace, got %q", gotTrace)
	}
}

func TestAccessLoggerWritesSummary(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	handler := AccessLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/tea", nil)
	req = req.WithContext(WithLogger(req.Context(), zap.New(core)))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Fatalf("expected status 418, got %v", fields["status"])
	}
	if fields["path"] != "/tea" {
		t.Fatalf("expected path /tea, got %v", fields["path"])
	}
}
