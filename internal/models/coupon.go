package models

// DiscountType distinguishes flat-amount coupons from percentage coupons
type DiscountType string

const (
	DiscountAmount     DiscountType = "amount"
	DiscountPercentage DiscountType = "percentage"
)

// Coupon is a cart-level discount applied once after all per-item discounts.
// The code is the coupon's identity; codes are unique within the repository.
// For percentage coupons DiscountValue is interpreted as 0-100.
type Coupon struct {
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
}
