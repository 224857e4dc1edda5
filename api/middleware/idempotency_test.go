package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (s *fakeStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := s.values[key]; ok {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *fakeStore) IdempotencyKey(scope, id string) string {
	return "tienda:idempotency:" + scope + ":" + id
}

func (s *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func idempotentRouter(store *fakeStore, calls *int) http.Handler {
	r := chi.NewRouter()
	r.Use(Idempotency(store, nil))
	r.Post("/api/cart/create/", func(w http.ResponseWriter, req *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Carrito creado correctamente"}`))
	})
	return r
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	calls := 0
	router := idempotentRouter(store, &calls)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/cart/create/", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("attempt %d: expected 201, got %d", i, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Carrito creado correctamente") {
			t.Fatalf("attempt %d: unexpected body %q", i, rec.Body.String())
		}
	}

	if calls != 1 {
		t.Fatalf("handler must run once, ran %d times", calls)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeStore()
	calls := 0
	router := idempotentRouter(store, &calls)

	first := httptest.NewRequest(http.MethodPost, "/api/cart/create/", strings.NewReader(`{}`))
	first.Header.Set("Idempotency-Key", "abc-123")
	router.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/api/cart/create/", strings.NewReader(`{"other":true}`))
	second.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, second)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("second call must not reach the handler, ran %d times", calls)
	}
}

// Mirrors the production mounting, where the middleware runs via Use inside
// the /api subtree and only sees the literal request path.
func TestIdempotencyUnderSubtreeMount(t *testing.T) {
	store := newFakeStore()
	calls := 0

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		api.Use(Idempotency(store, nil))
		api.Post("/cart/create/", func(w http.ResponseWriter, req *http.Request) {
			calls++
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"Carrito creado correctamente"}`))
		})
		api.Post("/cart/{cartID}/items/", func(w http.ResponseWriter, req *http.Request) {
			calls++
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"message":"Item agregado correctamente"}`))
		})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/cart/create/", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "abc-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("attempt %d: expected 201, got %d", i, rec.Code)
		}
	}
	if calls != 1 {
		t.Fatalf("create handler must run once, ran %d times (stored records: %d)", calls, len(store.values))
	}

	calls = 0
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/cart/7/items/", strings.NewReader(`{"product_id":1,"quantity":2}`))
		req.Header.Set("Idempotency-Key", "item-456")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("attempt %d: expected 201, got %d", i, rec.Code)
		}
	}
	if calls != 1 {
		t.Fatalf("items handler must run once, ran %d times", calls)
	}
}

func TestRuleMatches(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   bool
	}{
		{name: "save cart", method: http.MethodPost, path: "/api/cart/save/", want: true},
		{name: "create cart", method: http.MethodPost, path: "/api/cart/create/", want: true},
		{name: "add item", method: http.MethodPost, path: "/api/cart/42/items/", want: true},
		{name: "list carts", method: http.MethodGet, path: "/api/cart/", want: false},
		{name: "remove item", method: http.MethodDelete, path: "/api/cart/42/items/3/", want: false},
		{name: "catalog", method: http.MethodPost, path: "/api/products/", want: false},
		{name: "empty path", method: http.MethodPost, path: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ruleMatches(tc.method, tc.path); got != tc.want {
				t.Fatalf("ruleMatches(%s %s) = %v, want %v", tc.method, tc.path, got, tc.want)
			}
		})
	}
}

func TestIdempotencyWithoutHeaderPassesThrough(t *testing.T) {
	store := newFakeStore()
	calls := 0
	router := idempotentRouter(store, &calls)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/cart/create/", strings.NewReader(`{}`))
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Fatalf("headerless requests must always run, ran %d times", calls)
	}
	if len(store.values) != 0 {
		t.Fatalf("nothing should be stored without a key, got %d entries", len(store.values))
	}
}
