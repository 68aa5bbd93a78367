package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shophub/cart-service/internal/models"
	"github.com/shophub/cart-service/internal/notify"
	"github.com/shophub/cart-service/internal/repository"
)

var (
	ErrInvalidCoupon = errors.New("invalid coupon")
)

// Admin form limits on coupon values
const (
	maxAmountDiscount     = 100000
	maxPercentageDiscount = 100
)

// SelectionRevoker deselects a deleted coupon wherever it is applied
type SelectionRevoker interface {
	ForgetCoupon(code string)
}

// CouponService handles coupon listing and administration
type CouponService struct {
	repo    repository.CouponRepository
	revoker SelectionRevoker
	sink    notify.Sink
}

// NewCouponService creates a new coupon service
func NewCouponService(repo repository.CouponRepository, revoker SelectionRevoker, sink notify.Sink) *CouponService {
	return &CouponService{
		repo:    repo,
		revoker: revoker,
		sink:    sink,
	}
}

// ListCoupons returns all available coupons
func (s *CouponService) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	return s.repo.GetAll(ctx)
}

// GetCoupon returns a coupon by code
func (s *CouponService) GetCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	return s.repo.GetByCode(ctx, code)
}

// CreateCoupon validates and stores a new coupon. Duplicate codes are
// rejected by the repository.
func (s *CouponService) CreateCoupon(ctx context.Context, c models.Coupon) (*models.Coupon, error) {
	if err := validateCoupon(c); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrCouponExists) {
			s.sink.Push(notify.LevelError, "a coupon with that code already exists")
		}
		return nil, err
	}

	s.sink.Push(notify.LevelSuccess, "coupon added")
	return &c, nil
}

// DeleteCoupon removes a coupon and deselects it from any cart using it
func (s *CouponService) DeleteCoupon(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}

	if s.revoker != nil {
		s.revoker.ForgetCoupon(code)
	}

	s.sink.Push(notify.LevelSuccess, "coupon deleted")
	return nil
}

func validateCoupon(c models.Coupon) error {
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidCoupon)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCoupon)
	}
	if c.DiscountValue < 0 {
		return fmt.Errorf("%w: discount value must be non-negative", ErrInvalidCoupon)
	}

	switch c.DiscountType {
	case models.DiscountAmount:
		if c.DiscountValue > maxAmountDiscount {
			return fmt.Errorf("%w: amount discount cannot exceed %d", ErrInvalidCoupon, maxAmountDiscount)
		}
	case models.DiscountPercentage:
		if c.DiscountValue > maxPercentageDiscount {
			return fmt.Errorf("%w: percentage discount cannot exceed %d", ErrInvalidCoupon, maxPercentageDiscount)
		}
	default:
		return fmt.Errorf("%w: discount type must be amount or percentage", ErrInvalidCoupon)
	}

	return nil
}
