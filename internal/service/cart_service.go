package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shophub/cart-service/internal/coupon"
	"github.com/shophub/cart-service/internal/models"
	"github.com/shophub/cart-service/internal/notify"
	"github.com/shophub/cart-service/internal/pricing"
	"github.com/shophub/cart-service/internal/repository"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrStockExceeded    = errors.New("requested quantity exceeds available stock")
	ErrCouponIneligible = errors.New("coupon cannot be applied to the current total")
	ErrEmptyOrder       = errors.New("order must contain at least one item")
)

// ProductGetter is the slice of the product repository the cart service needs
type ProductGetter interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// CouponGetter is the slice of the coupon repository the cart service needs
type CouponGetter interface {
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
}

// CartView is a cart snapshot with freshly computed totals.
// Totals are derived on every read, never cached between mutations.
type CartView struct {
	ID             string         `json:"id"`
	Items          models.Cart    `json:"items"`
	SelectedCoupon *models.Coupon `json:"selectedCoupon,omitempty"`
	Totals         models.Totals  `json:"totals"`
}

// cartState is the mutable per-cart record
type cartState struct {
	items          models.Cart
	selectedCoupon *models.Coupon
}

// CartService owns the in-memory carts and every operation that mutates
// them. Carts are keyed by server-issued IDs and are not persisted; they
// live for the duration of a shopping session.
type CartService struct {
	mu       sync.Mutex
	carts    map[string]*cartState
	products ProductGetter
	coupons  CouponGetter
	sink     notify.Sink
}

// NewCartService creates a cart service
func NewCartService(products ProductGetter, coupons CouponGetter, sink notify.Sink) *CartService {
	return &CartService{
		carts:    make(map[string]*cartState),
		products: products,
		coupons:  coupons,
		sink:     sink,
	}
}

// CreateCart opens a new empty cart and returns its view
func (s *CartService) CreateCart(ctx context.Context) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.carts[id] = &cartState{}
	return s.view(id)
}

// GetCart returns the cart with recomputed totals
func (s *CartService) GetCart(ctx context.Context, cartID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[cartID]; !ok {
		return CartView{}, ErrCartNotFound
	}
	return s.view(cartID), nil
}

// AddItem adds quantity units of a product to the cart, incrementing the
// existing line if the product is already present. The addition is rejected
// when it would exceed the product's stock.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (CartView, error) {
	if quantity <= 0 {
		return CartView{}, ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return CartView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return CartView{}, ErrCartNotFound
	}

	inCart := 0
	lineIdx := -1
	for i, item := range cart.items {
		if item.Product.ID == productID {
			inCart = item.Quantity
			lineIdx = i
			break
		}
	}

	if inCart+quantity > product.Stock {
		s.sink.Push(notify.LevelError, fmt.Sprintf("only %d of %s in stock", product.Stock, product.Name))
		return s.view(cartID), ErrStockExceeded
	}

	if lineIdx >= 0 {
		cart.items[lineIdx].Quantity += quantity
	} else {
		cart.items = append(cart.items, models.CartItem{Product: *product, Quantity: quantity})
	}

	s.sink.Push(notify.LevelSuccess, "added to cart")
	return s.view(cartID), nil
}

// UpdateQuantity sets a cart line's quantity. A quantity of zero or below
// removes the line. A quantity above the product's current stock is rejected
// and the line is left unchanged. A product missing from the catalog is a
// no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (CartView, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, cartID, productID)
	}

	product, err := s.products.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrProductNotFound) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.carts[cartID]; !ok {
			return CartView{}, ErrCartNotFound
		}
		return s.view(cartID), nil
	}
	if err != nil {
		return CartView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return CartView{}, ErrCartNotFound
	}

	if quantity > product.Stock {
		s.sink.Push(notify.LevelError, fmt.Sprintf("only %d of %s in stock", product.Stock, product.Name))
		return s.view(cartID), ErrStockExceeded
	}

	for i, item := range cart.items {
		if item.Product.ID == productID {
			cart.items[i].Quantity = quantity
			break
		}
	}

	return s.view(cartID), nil
}

// RemoveItem drops a product's line from the cart
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return CartView{}, ErrCartNotFound
	}

	for i, item := range cart.items {
		if item.Product.ID == productID {
			cart.items = append(cart.items[:i], cart.items[i+1:]...)
			break
		}
	}

	return s.view(cartID), nil
}

// ApplyCoupon selects a coupon for the cart after validating it against the
// totals computed without the candidate. An ineligible coupon leaves the
// previous selection in place; an unknown code clears the selection.
func (s *CartService) ApplyCoupon(ctx context.Context, cartID, code string) (CartView, error) {
	candidate, err := s.coupons.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrCouponNotFound) {
		// Unknown code behaves like an explicit deselect
		return s.ClearCoupon(ctx, cartID)
	}
	if err != nil {
		return CartView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return CartView{}, ErrCartNotFound
	}

	current := pricing.ComputeTotals(cart.items, nil).TotalAfterDiscount
	result := coupon.Validate(*candidate, current)
	if !result.IsValid {
		s.sink.Push(notify.LevelError, result.ErrorMessage)
		return s.view(cartID), fmt.Errorf("%w: %s", ErrCouponIneligible, result.ErrorMessage)
	}

	cart.selectedCoupon = candidate
	s.sink.Push(notify.LevelSuccess, "coupon applied")
	return s.view(cartID), nil
}

// ClearCoupon deselects the cart's coupon, if any
func (s *CartService) ClearCoupon(ctx context.Context, cartID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return CartView{}, ErrCartNotFound
	}

	cart.selectedCoupon = nil
	return s.view(cartID), nil
}

// ForgetCoupon deselects the given code from every cart that has it applied.
// Called when a coupon is deleted from the repository.
func (s *CartService) ForgetCoupon(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cart := range s.carts {
		if cart.selectedCoupon != nil && cart.selectedCoupon.Code == code {
			cart.selectedCoupon = nil
		}
	}
}

// Checkout completes the order: the receipt snapshots the items and totals,
// then the cart and its coupon selection are cleared.
func (s *CartService) Checkout(ctx context.Context, cartID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	if len(cart.items) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]models.CartItem, len(cart.items))
	copy(items, cart.items)

	order := &models.Order{
		Number: generateOrderNumber(),
		Items:  items,
		Totals: pricing.ComputeTotals(cart.items, cart.selectedCoupon),
	}
	if cart.selectedCoupon != nil {
		order.CouponCode = cart.selectedCoupon.Code
	}

	cart.items = nil
	cart.selectedCoupon = nil

	s.sink.Push(notify.LevelSuccess, fmt.Sprintf("order completed. order number: %s", order.Number))
	return order, nil
}

// view builds a CartView with recomputed totals.
// Callers must hold the service lock.
func (s *CartService) view(cartID string) CartView {
	cart := s.carts[cartID]
	items := make(models.Cart, len(cart.items))
	copy(items, cart.items)

	return CartView{
		ID:             cartID,
		Items:          items,
		SelectedCoupon: cart.selectedCoupon,
		Totals:         pricing.ComputeTotals(cart.items, cart.selectedCoupon),
	}
}

// generateOrderNumber generates a unique order number
func generateOrderNumber() string {
	return "ORD-" + uuid.New().String()
}
