package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shophub/cart-service/internal/repository"
	"github.com/shophub/cart-service/internal/service"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

// CreateCart handles POST /api/carts
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	view := h.service.CreateCart(r.Context())
	writeJSON(w, http.StatusCreated, view)
}

// GetCart handles GET /api/carts/{cartID}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	view, err := h.service.GetCart(r.Context(), cartID)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/carts/{cartID}/items
// A missing or zero quantity defaults to one unit
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.service.AddItem(r.Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// UpdateQuantity handles PUT /api/carts/{cartID}/items/{productID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	productID := chi.URLParam(r, "productID")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.service.UpdateQuantity(r.Context(), cartID, productID, req.Quantity)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/carts/{cartID}/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	productID := chi.URLParam(r, "productID")

	view, err := h.service.RemoveItem(r.Context(), cartID, productID)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// ApplyCoupon handles POST /api/carts/{cartID}/coupon
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.service.ApplyCoupon(r.Context(), cartID, req.Code)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// ClearCoupon handles DELETE /api/carts/{cartID}/coupon
func (h *CartHandler) ClearCoupon(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	view, err := h.service.ClearCoupon(r.Context(), cartID)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Checkout handles POST /api/carts/{cartID}/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")

	order, err := h.service.Checkout(r.Context(), cartID)
	if err != nil {
		h.writeCartError(w, cartID, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// writeCartError maps cart service errors to HTTP responses
func (h *CartHandler) writeCartError(w http.ResponseWriter, cartID string, err error) {
	switch {
	case errors.Is(err, service.ErrCartNotFound):
		writeError(w, http.StatusNotFound, "Cart not found")
	case errors.Is(err, repository.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, service.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "Quantity must be positive")
	case errors.Is(err, service.ErrStockExceeded):
		writeError(w, http.StatusConflict, "Requested quantity exceeds available stock")
	case errors.Is(err, service.ErrCouponIneligible):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrEmptyOrder):
		writeError(w, http.StatusBadRequest, "Cart is empty")
	default:
		h.logger.Error("cart operation failed", "cartId", cartID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
