package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shophub/cart-service/internal/models"
	"github.com/shophub/cart-service/internal/notify"
	"github.com/shophub/cart-service/internal/repository"
	"github.com/shophub/cart-service/internal/service"
	"github.com/shophub/cart-service/pkg/localstore"
	"github.com/shophub/cart-service/pkg/logger"
)

func newProductHandler(t *testing.T) *ProductHandler {
	t.Helper()

	store, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	repo, err := repository.NewLocalProductRepository(store)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	svc := service.NewCatalogService(repo, notify.NewFeed(10))
	log := logger.New("error")
	return NewProductHandler(svc, log)
}

func TestListProducts(t *testing.T) {
	handler := newProductHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	handler.ListProducts(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var products []models.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	// Verify the seeded catalog is returned
	if len(products) != 3 {
		t.Errorf("expected 3 products, got %d", len(products))
	}
}

func TestListProducts_Search(t *testing.T) {
	handler := newProductHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products?q=tumbler", nil)
	w := httptest.NewRecorder()

	handler.ListProducts(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var products []models.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].Name != "Premium Tumbler" {
		t.Errorf("expected Premium Tumbler, got %s", products[0].Name)
	}
}

func TestGetProduct_Success(t *testing.T) {
	handler := newProductHandler(t)

	// Create router to handle URL params
	r := chi.NewRouter()
	r.Get("/api/products/{productID}", handler.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/api/products/p1", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var product models.Product
	if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if product.ID != "p1" {
		t.Errorf("expected product p1, got %s", product.ID)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	handler := newProductHandler(t)

	r := chi.NewRouter()
	r.Get("/api/products/{productID}", handler.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/api/products/no-such-product", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
