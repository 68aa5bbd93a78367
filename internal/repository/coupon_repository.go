package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/shophub/cart-service/internal/models"
	"github.com/shophub/cart-service/pkg/localstore"
)

var (
	ErrCouponNotFound = errors.New("coupon not found")
	ErrCouponExists   = errors.New("coupon code already exists")
)

// couponsKey is the persisted-store key holding the coupon list
const couponsKey = "coupons"

// bloomCapacity sizes the code filter; well above any realistic coupon count
const bloomCapacity = 10000

// CouponRepository defines the interface for coupon data access
type CouponRepository interface {
	GetAll(ctx context.Context) ([]models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Create(ctx context.Context, coupon models.Coupon) error
	Delete(ctx context.Context, code string) error
}

// LocalCouponRepository implements CouponRepository backed by the local JSON
// store. Code lookups are fronted by a bloom filter so misses short-circuit
// without scanning the list; the filter is rebuilt on every mutation since
// bloom filters do not support removal.
type LocalCouponRepository struct {
	mu      sync.RWMutex
	store   *localstore.Store
	coupons []models.Coupon
	filter  *bloom.BloomFilter
}

// NewLocalCouponRepository loads the persisted coupon list, seeding the demo
// coupons when nothing has been saved yet.
func NewLocalCouponRepository(store *localstore.Store) (*LocalCouponRepository, error) {
	r := &LocalCouponRepository{store: store}

	err := store.Load(couponsKey, &r.coupons)
	if errors.Is(err, localstore.ErrKeyNotFound) {
		r.coupons = seedCoupons()
		if err := store.Save(couponsKey, r.coupons); err != nil {
			return nil, fmt.Errorf("failed to seed coupons: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load coupons: %w", err)
	}

	r.rebuildFilter()
	return r, nil
}

func seedCoupons() []models.Coupon {
	return []models.Coupon{
		{Code: "AMOUNT5000", Name: "5,000 off", DiscountType: models.DiscountAmount, DiscountValue: 5000},
		{Code: "PERCENT10", Name: "10% off", DiscountType: models.DiscountPercentage, DiscountValue: 10},
	}
}

// rebuildFilter regenerates the bloom filter from the current coupon list.
// Callers must hold the write lock.
func (r *LocalCouponRepository) rebuildFilter() {
	r.filter = bloom.NewWithEstimates(bloomCapacity, 0.01)
	for _, c := range r.coupons {
		r.filter.AddString(c.Code)
	}
}

// GetAll returns all coupons in insertion order
func (r *LocalCouponRepository) GetAll(ctx context.Context) ([]models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Coupon, len(r.coupons))
	copy(out, r.coupons)
	return out, nil
}

// GetByCode returns the coupon with the given code
func (r *LocalCouponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Bloom filters have no false negatives, so a miss is definitive
	if !r.filter.TestString(code) {
		return nil, ErrCouponNotFound
	}

	for _, c := range r.coupons {
		if c.Code == code {
			coupon := c
			return &coupon, nil
		}
	}
	return nil, ErrCouponNotFound
}

// Create appends a coupon, rejecting duplicate codes, and persists the list
func (r *LocalCouponRepository) Create(ctx context.Context, coupon models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.coupons {
		if c.Code == coupon.Code {
			return ErrCouponExists
		}
	}

	r.coupons = append(r.coupons, coupon)
	r.filter.AddString(coupon.Code)
	return r.save()
}

// Delete removes the coupon with the given code and persists the list
func (r *LocalCouponRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.coupons {
		if c.Code == code {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			r.rebuildFilter()
			return r.save()
		}
	}
	return ErrCouponNotFound
}

func (r *LocalCouponRepository) save() error {
	if err := r.store.Save(couponsKey, r.coupons); err != nil {
		return fmt.Errorf("failed to persist coupons: %w", err)
	}
	return nil
}
