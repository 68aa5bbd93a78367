package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shophub/cart-service/internal/repository"
	"github.com/shophub/cart-service/internal/service"
)

// CouponHandler handles HTTP requests for browsing coupons
type CouponHandler struct {
	service *service.CouponService
	logger  *slog.Logger
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(service *service.CouponService, logger *slog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger,
	}
}

// ListCoupons handles GET /api/coupons
func (h *CouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.ListCoupons(r.Context())
	if err != nil {
		h.logger.Error("failed to list coupons", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, coupons)
}

// GetCoupon handles GET /api/coupons/{code}
func (h *CouponHandler) GetCoupon(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	c, err := h.service.GetCoupon(r.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			writeError(w, http.StatusNotFound, "Coupon not found")
			return
		}
		h.logger.Error("failed to get coupon", "code", code, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, c)
}
