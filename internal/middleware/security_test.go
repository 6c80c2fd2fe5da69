package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	headers := map[string]string{
		"X-Frame-Options":         "DENY",
		"X-Content-Type-Options":  "nosniff",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}
	for name, want := range headers {
		if got := w.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(rate.Limit(1), 2)

	r := gin.New()
	r.Use(RateLimitMiddleware(limiter))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "192.0.2.10:1234"
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	// Burst of 2 passes, the immediate follow-ups are throttled
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests should pass, got %v", statuses)
	}
	if statuses[3] != http.StatusTooManyRequests {
		t.Errorf("expected 429 once the burst is spent, got %v", statuses)
	}
}

func TestRateLimiterPerIP(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(1), 1)

	a := limiter.GetLimiter("192.0.2.1")
	b := limiter.GetLimiter("192.0.2.2")
	if a == b {
		t.Error("distinct IPs must get distinct buckets")
	}
	if limiter.GetLimiter("192.0.2.1") != a {
		t.Error("same IP must reuse its bucket")
	}

	// Draining one bucket does not affect the other
	if !a.Allow() {
		t.Fatal("first request should be allowed")
	}
	if a.Allow() {
		t.Error("bucket with burst 1 should be empty")
	}
	if !b.Allow() {
		t.Error("second IP's bucket should be untouched")
	}
}
