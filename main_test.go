package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Illusion/internal/auth"
	"Illusion/internal/calc/illusion"
	"Illusion/internal/config"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	r := mux.NewRouter()
	HandleList(r, cfg, zap.NewNop())
	return CORS(r)
}

func testConfig() *config.Config {
	return &config.Config{Addr: ":0", RateLimit: 1000, RateBurst: 1000, ShutdownTimeout: time.Second}
}

func calcRequest(t *testing.T) *http.Request {
	t.Helper()
	body, err := json.Marshal(illusion.DefaultInput())
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/api/illusion/calc", bytes.NewReader(body))
}

func TestRoutes(t *testing.T) {
	srv := newServer(t, testConfig())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, calcRequest(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	for _, path := range []string{"/health", "/metrics", "/api/illusion/defaults"} {
		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/illusion/calc", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/illusion/calc", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRoutes_RequestIDPassthrough(t *testing.T) {
	srv := newServer(t, testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRoutes_Auth(t *testing.T) {
	cfg := testConfig()
	cfg.TokenKey = "secret"
	srv := newServer(t, cfg)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, calcRequest(t))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := (&auth.Authenv{JWTkey: []byte("secret")}).IssueToken("tester", time.Hour)
	require.NoError(t, err)
	req := calcRequest(t)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	srv := newServer(t, cfg)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, calcRequest(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, calcRequest(t))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
