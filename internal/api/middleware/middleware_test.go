package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meal-generator/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.POST("/echo", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/echo", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	r.ServeHTTP(w, req)
	return w
}

func TestDeduplicationRejectsRepeatedBody(t *testing.T) {
	r := newEngine(Deduplication(time.Minute))
	if w := post(r, `{"a":1}`); w.Code != http.StatusOK {
		t.Fatalf("first request: %d", w.Code)
	}
	if w := post(r, `{"a":1}`); w.Code != http.StatusTooManyRequests {
		t.Fatalf("duplicate request: %d", w.Code)
	}
	if w := post(r, `{"a":2}`); w.Code != http.StatusOK {
		t.Fatalf("different body: %d", w.Code)
	}
}

func TestDedupCacheExpires(t *testing.T) {
	d := &dedupCache{requests: make(map[string]time.Time), window: time.Second}
	now := time.Unix(100, 0)
	if d.seen("x", now) {
		t.Fatal("first sighting")
	}
	if !d.seen("x", now.Add(500*time.Millisecond)) {
		t.Fatal("repeat inside window")
	}
	if d.seen("x", now.Add(2*time.Second)) {
		t.Fatal("repeat after window should pass")
	}
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	clock := time.Unix(0, 0)
	rl.now = func() time.Time { return clock }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests allowed")
	}
	if rl.Allow("a") {
		t.Fatal("third request within window must be limited")
	}
	if !rl.Allow("b") {
		t.Fatal("other clients have their own bucket")
	}
	clock = clock.Add(30 * time.Second)
	if !rl.Allow("a") {
		t.Fatal("token should refill after half the window")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine(RateLimit(1, time.Minute))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("first: %d", w.Code)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") != "60" {
		t.Fatalf("second: %d %q", w.Code, w.Header().Get("Retry-After"))
	}
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(4))
	if w := post(r, "12345678"); w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
	if w := post(r, "12"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRecoveryAndRequestContext(t *testing.T) {
	var seen string
	r := gin.New()
	r.Use(Recovery(), requestid.New(), RequestContext())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/id", func(c *gin.Context) {
		seen = common.RequestIDFrom(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "INTERNAL_ERROR") {
		t.Fatalf("panic not recovered: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/id", nil).WithContext(context.Background())
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if seen != "abc-123" {
		t.Fatalf("request id not propagated, got %q", seen)
	}
}
