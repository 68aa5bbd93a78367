package handlers

import (
	"encoding/json"
	"net/http"
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

func newAdminRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	productRepo, err := repository.NewLocalProductRepository(store)
	require.NoError(t, err)
	couponRepo, err := repository.NewLocalCouponRepository(store)
	require.NoError(t, err)

	feed := notify.NewFeed(10)
	catalog := service.NewCatalogService(productRepo, feed)
	coupons := service.NewCouponService(couponRepo, nil, feed)
	handler := NewAdminHandler(catalog, coupons, logger.New("error"))

	r := chi.NewRouter()
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/products", handler.CreateProduct)
		r.Put("/products/{productID}", handler.UpdateProduct)
		r.Delete("/products/{productID}", handler.DeleteProduct)
		r.Post("/coupons", handler.CreateCoupon)
		r.Delete("/coupons/{code}", handler.DeleteCoupon)
	})
	return r
}

func TestAdminHandler_ProductLifecycle(t *testing.T) {
	r := newAdminRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/products", models.Product{
		Name: "Poster", Price: 6000, Stock: 15,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	require.NotEmpty(t, created.ID)

	created.Price = 7000
	w = doJSON(t, r, http.MethodPut, "/api/admin/products/"+created.ID, created)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/admin/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/admin/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminHandler_ProductValidation(t *testing.T) {
	r := newAdminRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/products", models.Product{
		Name: "Bad", Price: -10, Stock: 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_CouponLifecycle(t *testing.T) {
	r := newAdminRouter(t)

	c := models.Coupon{Code: "SPRING", Name: "Spring Sale", DiscountType: models.DiscountPercentage, DiscountValue: 15}
	w := doJSON(t, r, http.MethodPost, "/api/admin/coupons", c)
	require.Equal(t, http.StatusCreated, w.Code)

	// duplicate code conflicts
	w = doJSON(t, r, http.MethodPost, "/api/admin/coupons", c)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/admin/coupons/SPRING", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAdminHandler_CouponValueCaps(t *testing.T) {
	r := newAdminRouter(t)

	tests := []struct {
		name   string
		coupon models.Coupon
	}{
		{"amount above cap", models.Coupon{Code: "BIG", Name: "big", DiscountType: models.DiscountAmount, DiscountValue: 200000}},
		{"percentage above cap", models.Coupon{Code: "ALL", Name: "all", DiscountType: models.DiscountPercentage, DiscountValue: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/admin/coupons", tt.coupon)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
