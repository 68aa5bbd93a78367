// Package coupon gates whether a coupon may be applied to a cart.
package coupon

import "github.com/shophub/cart-service/internal/models"

// PercentageMinTotal is the minimum post-discount cart total required
// before a percentage coupon may be applied. Amount coupons have no minimum.
const PercentageMinTotal = 10000

// IneligibleMessage is the user-facing rejection for percentage coupons
// applied below the minimum total.
const IneligibleMessage = "percentage coupons can only be used on orders of 10,000 or more"

// Result reports whether a coupon may be applied, with a user-facing
// message when it may not.
type Result struct {
	IsValid      bool   `json:"isValid"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Validate checks a coupon against the cart's current post-discount total,
// computed without the candidate coupon. The check runs at the moment of
// application only: a coupon already applied is not revoked if the total
// later falls below the minimum through quantity changes.
func Validate(c models.Coupon, totalAfterDiscount int64) Result {
	if c.DiscountType == models.DiscountPercentage && totalAfterDiscount < PercentageMinTotal {
		return Result{IsValid: false, ErrorMessage: IneligibleMessage}
	}
	return Result{IsValid: true}
}
