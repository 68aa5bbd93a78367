package handlers

import (
	"bytes"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCartRouter wires the cart routes exactly as the server does
func newCartRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	productRepo, err := repository.NewLocalProductRepository(store)
	require.NoError(t, err)
	couponRepo, err := repository.NewLocalCouponRepository(store)
	require.NoError(t, err)

	svc := service.NewCartService(productRepo, couponRepo, notify.NewFeed(10))
	handler := NewCartHandler(svc, logger.New("error"))

	r := chi.NewRouter()
	r.Route("/api/carts", func(r chi.Router) {
		r.Post("/", handler.CreateCart)
		r.Get("/{cartID}", handler.GetCart)
		r.Post("/{cartID}/items", handler.AddItem)
		r.Put("/{cartID}/items/{productID}", handler.UpdateQuantity)
		r.Delete("/{cartID}/items/{productID}", handler.RemoveItem)
		r.Post("/{cartID}/coupon", handler.ApplyCoupon)
		r.Delete("/{cartID}/coupon", handler.ClearCoupon)
		r.Post("/{cartID}/checkout", handler.Checkout)
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) service.CartView {
	t.Helper()

	var view service.CartView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	return view
}

func TestCartFlow(t *testing.T) {
	r := newCartRouter(t)

	// open a cart
	w := doJSON(t, r, http.MethodPost, "/api/carts", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	cart := decodeView(t, w)
	require.NotEmpty(t, cart.ID)

	// seed product p1: price 10,000, tier {10, 0.1}, stock 20
	w = doJSON(t, r, http.MethodPost, "/api/carts/"+cart.ID+"/items", map[string]any{"productId": "p1", "quantity": 10})
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeView(t, w)
	assert.Equal(t, int64(100000), view.Totals.TotalBeforeDiscount)
	assert.Equal(t, int64(85000), view.Totals.TotalAfterDiscount)

	// seeded percentage coupon applies at this total
	w = doJSON(t, r, http.MethodPost, "/api/carts/"+cart.ID+"/coupon", map[string]any{"code": "PERCENT10"})
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeView(t, w)
	assert.Equal(t, int64(76500), view.Totals.TotalAfterDiscount)

	// checkout returns a receipt and clears the cart
	w = doJSON(t, r, http.MethodPost, "/api/carts/"+cart.ID+"/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
	assert.Contains(t, order.Number, "ORD-")
	assert.Equal(t, "PERCENT10", order.CouponCode)

	w = doJSON(t, r, http.MethodGet, "/api/carts/"+cart.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = decodeView(t, w)
	assert.Empty(t, view.Items)
	assert.Nil(t, view.SelectedCoupon)
}

func TestCartHandler_StockExceeded(t *testing.T) {
	r := newCartRouter(t)

	cart := decodeView(t, doJSON(t, r, http.MethodPost, "/api/carts", nil))

	// seeded stock is 20
	w := doJSON(t, r, http.MethodPost, "/api/carts/"+cart.ID+"/items", map[string]any{"productId": "p1", "quantity": 21})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCartHandler_CouponIneligible(t *testing.T) {
	r := newCartRouter(t)

	cart := decodeView(t, doJSON(t, r, http.MethodPost, "/api/carts", nil))

	// empty cart total is 0, below the percentage-coupon minimum
	w := doJSON(t, r, http.MethodPost, "/api/carts/"+cart.ID+"/coupon", map[string]any{"code": "PERCENT10"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCartHandler_CartNotFound(t *testing.T) {
	r := newCartRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/carts/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
