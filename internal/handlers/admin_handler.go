package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shophub/cart-service/internal/models"
	"github.com/shophub/cart-service/internal/repository"
	"github.com/shophub/cart-service/internal/service"
)

// AdminHandler handles the authenticated product and coupon management endpoints
type AdminHandler struct {
	catalog *service.CatalogService
	coupons *service.CouponService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(catalog *service.CatalogService, coupons *service.CouponService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		coupons: coupons,
		logger:  logger,
	}
}

// CreateProduct handles POST /api/admin/products
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.catalog.AddProduct(r.Context(), product)
	if err != nil {
		h.writeAdminError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateProduct handles PUT /api/admin/products/{productID}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	product.ID = productID

	updated, err := h.catalog.UpdateProduct(r.Context(), product)
	if err != nil {
		h.writeAdminError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /api/admin/products/{productID}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.catalog.DeleteProduct(r.Context(), productID); err != nil {
		h.writeAdminError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateCoupon handles POST /api/admin/coupons
func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var c models.Coupon
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.coupons.CreateCoupon(r.Context(), c)
	if err != nil {
		h.writeAdminError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// DeleteCoupon handles DELETE /api/admin/coupons/{code}
func (h *AdminHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.coupons.DeleteCoupon(r.Context(), code); err != nil {
		h.writeAdminError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeAdminError maps admin service errors to HTTP responses
func (h *AdminHandler) writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidProduct), errors.Is(err, service.ErrInvalidCoupon):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, repository.ErrCouponNotFound):
		writeError(w, http.StatusNotFound, "Coupon not found")
	case errors.Is(err, repository.ErrCouponExists):
		writeError(w, http.StatusConflict, "Coupon code already exists")
	default:
		h.logger.Error("admin operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
