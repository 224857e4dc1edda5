package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	cartsvc "github.com/martin-vega/tienda-backend/internal/cart"
	"github.com/martin-vega/tienda-backend/pkg/db/models"
	pkgerrors "github.com/martin-vega/tienda-backend/pkg/errors"
)

type stubService struct {
	createEmptyFn func(ctx context.Context) (*models.Cart, error)
	saveFn        func(ctx context.Context, items []cartsvc.SaveCartItemInput) (*models.Cart, error)
	getFn         func(ctx context.Context, cartID uint) (*models.Cart, error)
	listFn        func(ctx context.Context) ([]models.Cart, error)
	deleteFn      func(ctx context.Context, cartID uint) error
	addItemFn     func(ctx context.Context, cartID uint, input cartsvc.AddItemInput) (*cartsvc.ItemResult, error)
	removeItemFn  func(ctx context.Context, cartID, itemID uint) error
	updateQtyFn   func(ctx context.Context, cartID, itemID uint, quantity int) (*cartsvc.ItemResult, error)
}

func (s *stubService) CreateEmptyCart(ctx context.Context) (*models.Cart, error) {
	return s.createEmptyFn(ctx)
}

func (s *stubService) SaveCart(ctx context.Context, items []cartsvc.SaveCartItemInput) (*models.Cart, error) {
	return s.saveFn(ctx, items)
}

func (s *stubService) GetCart(ctx context.Context, cartID uint) (*models.Cart, error) {
	return s.getFn(ctx, cartID)
}

func (s *stubService) ListSavedCarts(ctx context.Context) ([]models.Cart, error) {
	return s.listFn(ctx)
}

func (s *stubService) DeleteCart(ctx context.Context, cartID uint) error {
	return s.deleteFn(ctx, cartID)
}

func (s *stubService) AddItem(ctx context.Context, cartID uint, input cartsvc.AddItemInput) (*cartsvc.ItemResult, error) {
	return s.addItemFn(ctx, cartID, input)
}

func (s *stubService) RemoveItem(ctx context.Context, cartID, itemID uint) error {
	return s.removeItemFn(ctx, cartID, itemID)
}

func (s *stubService) UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) (*cartsvc.ItemResult, error) {
	return s.updateQtyFn(ctx, cartID, itemID, quantity)
}

func testRouter(svc cartsvc.Service) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/cart", func(r chi.Router) {
		r.Post("/create/", Create(svc, nil))
		r.Post("/save/", Save(svc, nil))
		r.Get("/", List(svc, nil))
		r.Get("/{cartID}/", Fetch(svc, nil))
		r.Delete("/{cartID}/", Delete(svc, nil))
		r.Post("/{cartID}/items/", AddItem(svc, nil))
		r.Delete("/{cartID}/items/{itemID}/", RemoveItem(svc, nil))
		r.Patch("/{cartID}/items/{itemID}/quantity/", UpdateQuantity(svc, nil))
	})
	return r
}

func sampleProduct() models.Product {
	return models.Product{
		ID:       7,
		Name:     "Laptop HP 15",
		Price:    decimal.NewFromFloat(699.99),
		Stock:    15,
		IsActive: true,
	}
}

func TestCreateRespondsWithEmptyCart(t *testing.T) {
	svc := &stubService{
		createEmptyFn: func(ctx context.Context) (*models.Cart, error) {
			return &models.Cart{ID: 4, Items: []models.CartItem{}}, nil
		},
	}

	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cart/create/", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Message string           `json:"message"`
		Cart    cartsvc.CartView `json:"cart"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Message != "Carrito creado correctamente" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Cart.ID != 4 || body.Cart.Total != "0.00" {
		t.Fatalf("unexpected cart %+v", body.Cart)
	}
}

func TestSaveForwardsItemsAndResponds201(t *testing.T) {
	var received []cartsvc.SaveCartItemInput
	svc := &stubService{
		saveFn: func(ctx context.Context, items []cartsvc.SaveCartItemInput) (*models.Cart, error) {
			received = items
			product := sampleProduct()
			return &models.Cart{
				ID:      9,
				IsSaved: true,
				Items: []models.CartItem{
					{ID: 1, CartID: 9, ProductID: product.ID, Quantity: 2, Product: product},
				},
			}, nil
		},
	}

	payload := `{"items":[{"product_id":7,"quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/save/", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(received) != 1 || received[0].ProductID != 7 || received[0].Quantity != 2 {
		t.Fatalf("unexpected forwarded items %+v", received)
	}
	if !strings.Contains(rec.Body.String(), "Carrito guardado correctamente") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"total":"1399.98"`) {
		t.Fatalf("expected projected total, got %s", rec.Body.String())
	}
}

func TestSaveRejectsEmptyItems(t *testing.T) {
	svc := &stubService{
		saveFn: func(ctx context.Context, items []cartsvc.SaveCartItemInput) (*models.Cart, error) {
			t.Fatal("service must not run on invalid payload")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/cart/save/", strings.NewReader(`{"items":[]}`))
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := body["items"]; !ok {
		t.Fatalf("expected field-keyed validation details, got %v", body)
	}
}

func TestListRespondsWithBareArray(t *testing.T) {
	svc := &stubService{
		listFn: func(ctx context.Context) ([]models.Cart, error) {
			return []models.Cart{{ID: 2, IsSaved: true}, {ID: 1, IsSaved: true}}, nil
		},
	}

	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body []cartsvc.CartView
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected a bare array, got %s", rec.Body.String())
	}
	if len(body) != 2 || body[0].ID != 2 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestFetchNotFound(t *testing.T) {
	svc := &stubService{
		getFn: func(ctx context.Context, cartID uint) (*models.Cart, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Carrito no encontrado")
		},
	}

	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart/44/", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Carrito no encontrado") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestDeleteResponds204(t *testing.T) {
	called := false
	svc := &stubService{
		deleteFn: func(ctx context.Context, cartID uint) error {
			called = cartID == 3
			return nil
		},
	}

	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/cart/3/", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %s", rec.Body.String())
	}
	if !called {
		t.Fatal("service not invoked with the path id")
	}
}

func TestAddItemStatusReflectsMerge(t *testing.T) {
	cases := []struct {
		name    string
		created bool
		want    int
	}{
		{"new row", true, http.StatusCreated},
		{"merged row", false, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{
				addItemFn: func(ctx context.Context, cartID uint, input cartsvc.AddItemInput) (*cartsvc.ItemResult, error) {
					product := sampleProduct()
					return &cartsvc.ItemResult{
						Item:    models.CartItem{ID: 5, CartID: cartID, ProductID: product.ID, Quantity: input.Quantity, Product: product},
						Created: tc.created,
					}, nil
				},
			}

			payload := `{"product_id":7,"quantity":2}`
			req := httptest.NewRequest(http.MethodPost, "/api/cart/3/items/", strings.NewReader(payload))
			rec := httptest.NewRecorder()
			testRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), "Item agregado correctamente") {
				t.Fatalf("unexpected body %s", rec.Body.String())
			}
		})
	}
}

func TestAddItemInsufficientStock(t *testing.T) {
	svc := &stubService{
		addItemFn: func(ctx context.Context, cartID uint, input cartsvc.AddItemInput) (*cartsvc.ItemResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Stock insuficiente. Disponible: 3")
		},
	}

	payload := `{"product_id":7,"quantity":9}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/3/items/", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Stock insuficiente. Disponible: 3" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRemoveItemResponds204(t *testing.T) {
	svc := &stubService{
		removeItemFn: func(ctx context.Context, cartID, itemID uint) error {
			if cartID != 3 || itemID != 8 {
				t.Fatalf("unexpected ids cart=%d item=%d", cartID, itemID)
			}
			return nil
		},
	}

	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/cart/3/items/8/", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestUpdateQuantityResponds200(t *testing.T) {
	svc := &stubService{
		updateQtyFn: func(ctx context.Context, cartID, itemID uint, quantity int) (*cartsvc.ItemResult, error) {
			product := sampleProduct()
			return &cartsvc.ItemResult{
				Item: models.CartItem{ID: itemID, CartID: cartID, ProductID: product.ID, Quantity: quantity, Product: product},
			}, nil
		},
	}

	payload := `{"quantity":4}`
	req := httptest.NewRequest(http.MethodPatch, "/api/cart/3/items/8/quantity/", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Cantidad actualizada correctamente") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"quantity":4`) {
		t.Fatalf("expected updated quantity in body, got %s", rec.Body.String())
	}
}

func TestPathIDValidation(t *testing.T) {
	svc := &stubService{
		getFn: func(ctx context.Context, cartID uint) (*models.Cart, error) {
			t.Fatal("service must not run for invalid ids")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	testRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart/abc/", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
