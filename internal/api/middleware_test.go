package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("203.0.113.1:1111"))
	assert.Equal(t, http.StatusOK, do("203.0.113.1:1111"))
	assert.Equal(t, http.StatusTooManyRequests, do("203.0.113.1:1111"), "burst exhausted")

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, do("203.0.113.2:2222"))
}
