package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTimingMiddlewareSetsHeader(t *testing.T) {
	rec := doRequest(TimingMiddleware(okHandler()), "10.0.0.1:1234")
	if rec.Header().Get("X-Process-Time") == "" {
		t.Error("X-Process-Time header missing")
	}
}

func TestRateLimitRejectsPastBurst(t *testing.T) {
	h := RateLimitMiddleware(2, time.Minute)(okHandler())

	// 2 per minute floors burst at 1: first request passes, second is
	// rejected before the bucket refills.
	if rec := doRequest(h, "10.0.0.1:1234"); rec.Code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", rec.Code)
	}
	rec := doRequest(h, "10.0.0.1:1234")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want %q", got, "60")
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "2" {
		t.Errorf("X-RateLimit-Limit = %q, want %q", got, "2")
	}
}

func TestRateLimitBurstFloorAdmitsFirstRequest(t *testing.T) {
	h := RateLimitMiddleware(1, time.Minute)(okHandler())
	if rec := doRequest(h, "10.0.0.1:1234"); rec.Code != http.StatusOK {
		t.Errorf("first request at limit 1 = %d, want 200", rec.Code)
	}
}

func TestRateLimitBucketsPerIP(t *testing.T) {
	h := RateLimitMiddleware(2, time.Minute)(okHandler())

	doRequest(h, "10.0.0.1:1234")
	if rec := doRequest(h, "10.0.0.1:1234"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("exhausted IP = %d, want 429", rec.Code)
	}
	if rec := doRequest(h, "10.0.0.2:1234"); rec.Code != http.StatusOK {
		t.Errorf("fresh IP = %d, want 200", rec.Code)
	}
}

func TestClientIPStripsPort(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:5555"
	if got := clientIP(req); got != "10.0.0.9" {
		t.Errorf("clientIP = %q, want %q", got, "10.0.0.9")
	}
	req.RemoteAddr = "10.0.0.9"
	if got := clientIP(req); got != "10.0.0.9" {
		t.Errorf("bare clientIP = %q, want %q", got, "10.0.0.9")
	}
}
