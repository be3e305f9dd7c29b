package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vacinafacil/api/internal/auth"
	"github.com/vacinafacil/api/internal/config"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Port:            5000,
		JWTAccessTTL:    time.Hour,
		RateLimitPublic: config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100},
		RateLimitAuth:   config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100},
		Upload: config.UploadConfig{
			Dir:        t.TempDir(),
			MaxBytes:   8 * 1024 * 1024,
			PublicPath: "/images",
		},
		Admin: config.AdminConfig{Name: "Administrator", Email: "admin@example.com", Password: "super-secret"},
	}
	tokens := auth.NewTokenManager(
		"user-secret-user-secret-user-secret!",
		"admin-secret-admin-secret-admin-sec!",
		cfg.JWTAccessTTL,
	)

	// O pool só é dereferenciado por /ready e pelas consultas dos
	// repositórios; as rotas exercitadas aqui não chegam ao banco.
	handler, err := NewRouter(cfg, nil, tokens)
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return handler
}

func TestRouterRouteGates(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}

	// Rotas protegidas respondem 401 sem credencial, antes de tocar o banco.
	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/user/profile"},
		{http.MethodGet, "/user"},
		{http.MethodGet, "/vaccine"},
		{http.MethodGet, "/vaccine-calendar"},
		{http.MethodGet, "/reservation"},
		{http.MethodGet, "/vaccination"},
		{http.MethodDelete, "/user/remove/abc"},
	}

	for _, tc := range protected {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", tc.method, tc.path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Restricted access - Token missing") {
			t.Fatalf("%s %s: unexpected body %s", tc.method, tc.path, rec.Body.String())
		}
	}
}
