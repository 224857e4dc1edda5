package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/martin-vega/tienda-backend/pkg/auth"
	"github.com/martin-vega/tienda-backend/pkg/config"
)

func authConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "tienda-backend",
		ExpirationMinutes: 60,
	}
}

func protected(cfg config.JWTConfig) (http.Handler, *string) {
	var seen string
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seen
}

func TestAuthAcceptsValidBearerToken(t *testing.T) {
	cfg := authConfig()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), "session-9")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	handler, seen := protected(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/cart/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if *seen != "session-9" {
		t.Fatalf("expected subject in context, got %q", *seen)
	}
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler, _ := protected(authConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/cart/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler, _ := protected(authConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/cart/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
