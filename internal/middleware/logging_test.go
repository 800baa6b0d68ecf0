package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// dummyHandler is a placeholder that records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
	status int
	body   string
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	if d.status != 0 {
		w.WriteHeader(d.status)
	}
	_, _ = w.Write([]byte(d.body))
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return zap.New(core), logs
}

func TestWithRequestLogging_LogsRequest(t *testing.T) {
	logger, logs := newObservedLogger()
	dummy := &dummyHandler{status: http.StatusTeapot, body: "short and stout"}
	h := WithRequestLogging(logger)(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/sign-in", nil)
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Fatal("expected next handler to be called")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, rec.Code)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != "POST" {
		t.Errorf("method = %v; want POST", fields["method"])
	}
	if fields["path"] != "/sign-in" {
		t.Errorf("path = %v; want /sign-in", fields["path"])
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status = %v; want %d", fields["status"], http.StatusTeapot)
	}
	if fields["size"] != int64(len("short and stout")) {
		t.Errorf("size = %v; want %d", fields["size"], len("short and stout"))
	}
}

func TestWithRequestLogging_ImplicitOK(t *testing.T) {
	logger, logs := newObservedLogger()
	h := WithRequestLogging(logger)(&dummyHandler{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := logs.All()[0].ContextMap()["status"]; got != int64(http.StatusOK) {
		t.Errorf("status = %v; want 200", got)
	}
}

func TestWithRequestLogging_GeneratesRequestID(t *testing.T) {
	dummy := &dummyHandler{}
	h := WithRequestLogging(zap.NewNop())(dummy)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/sign-up", nil))

	id := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected uuid request id, got %q", id)
	}
	if got := GetRequestIDFromContext(dummy.ctx); got != id {
		t.Errorf("context request id = %q; want %q", got, id)
	}
}

func TestWithRequestLogging_ReusesIncomingID(t *testing.T) {
	dummy := &dummyHandler{}
	h := WithRequestLogging(zap.NewNop())(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/sign-up", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("response request id = %q; want abc-123", got)
	}
	if got := GetRequestIDFromContext(dummy.ctx); got != "abc-123" {
		t.Errorf("context request id = %q; want abc-123", got)
	}
}

func TestGetRequestIDFromContext(t *testing.T) {
	// no value
	empty := GetRequestIDFromContext(context.Background())
	if empty != "" {
		t.Errorf("expected empty string for missing id, got '%s'", empty)
	}
	// with value
	ctx := context.WithValue(context.Background(), requestIDKey, "rid")
	val := GetRequestIDFromContext(ctx)
	if val != "rid" {
		t.Errorf("expected 'rid', got '%s'", val)
	}
}

func TestWithRequestLogging_KeepsResponseController(t *testing.T) {
	logger, _ := newObservedLogger()

	var flushErr error
	h := WithRequestLogging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("chunk"))
		flushErr = http.NewResponseController(w).Flush()
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))

	if flushErr != nil {
		t.Fatalf("Flush through middleware: %v", flushErr)
	}
	if !rec.Flushed {
		t.Error("underlying writer was not flushed")
	}
}
