package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/martin-vega/tienda-backend/pkg/logger"
)

func cartIDRouter(logg *logger.Logger, handler http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/cart/{cartID}", func(r chi.Router) {
		r.Use(CartID(logg))
		r.Get("/", handler)
	})
	return r
}

func TestCartIDTagsLogContext(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "tienda-test", Level: zerolog.InfoLevel, Output: &buf})

	router := cartIDRouter(logg, func(w http.ResponseWriter, req *http.Request) {
		logg.Info(req.Context(), "cart.read")
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart/42/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), `"cart_id":42`) {
		t.Fatalf("log output must carry cart_id, got %q", buf.String())
	}
}

func TestCartIDSkipsUnparsableParam(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "tienda-test", Level: zerolog.InfoLevel, Output: &buf})

	router := cartIDRouter(logg, func(w http.ResponseWriter, req *http.Request) {
		logg.Info(req.Context(), "cart.read")
		w.WriteHeader(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/cart/abc/", nil))

	if strings.Contains(buf.String(), "cart_id") {
		t.Fatalf("non-numeric id must not be tagged, got %q", buf.String())
	}
}

func TestCartIDNilLoggerPassesThrough(t *testing.T) {
	called := false
	router := cartIDRouter(nil, func(w http.ResponseWriter, req *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart/7/", nil))

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("handler must run with a nil logger, called=%v status=%d", called, rec.Code)
	}
}
