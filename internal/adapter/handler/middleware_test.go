package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedOrigin(t *testing.T) {
	assert.True(t, isAllowedOrigin("https://framer.app"))
	assert.True(t, isAllowedOrigin("https://ventura-yachts.framer.app"))
	assert.False(t, isAllowedOrigin("https://evil-framer.app.example.com"))
	assert.False(t, isAllowedOrigin("https://notframer.example"))
	assert.False(t, isAllowedOrigin(""))
}

func TestCORSPreflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})

	req := httptest.NewRequest(http.MethodOptions, "/boats", nil)
	req.Header.Set("Origin", "https://site.framer.app")
	rec := httptest.NewRecorder()
	CORS(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://site.framer.app", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET,POST,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/boats", nil)
	req.Header.Set("Origin", "https://somewhere.example")
	rec := httptest.NewRecorder()
	CORS(next).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recover(testLogger(), next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unexpected error")
}
