// Package pricing holds the cart pricing rules: per-item discount-rate
// resolution, line totals, and the cart total with an optional coupon.
// All functions are pure; callers recompute totals after every cart or
// coupon change instead of caching them.
package pricing

import (
	"math"

	"github.com/shophub/cart-service/internal/models"
)

const (
	// BulkQuantity is the line quantity at which the cart-wide bulk bonus kicks in
	BulkQuantity = 10
	// BulkBonusRate is added to every line's discount rate when any line
	// in the cart reaches BulkQuantity
	BulkBonusRate = 0.05
	// MaxDiscountRate caps the resolved per-item rate
	MaxDiscountRate = 0.5
)

// ResolveDiscountRate computes the discount rate applicable to one cart line.
// The base rate is the highest tier rate whose quantity threshold the line
// meets (not the highest threshold). If any line in the cart qualifies as a
// bulk purchase, a flat bonus is added on top. The result never exceeds
// MaxDiscountRate.
func ResolveDiscountRate(item models.CartItem, cart models.Cart) float64 {
	base := 0.0
	for _, d := range item.Product.Discounts {
		if item.Quantity >= d.Quantity && d.Rate > base {
			base = d.Rate
		}
	}

	for _, line := range cart {
		if line.Quantity >= BulkQuantity {
			base += BulkBonusRate
			break
		}
	}

	return math.Min(base, MaxDiscountRate)
}

// ItemTotal returns the discounted price of one cart line, rounded to the
// nearest whole currency unit.
func ItemTotal(item models.CartItem, cart models.Cart) int64 {
	rate := ResolveDiscountRate(item, cart)
	return int64(math.Round(item.Product.Price * float64(item.Quantity) * (1 - rate)))
}

// ComputeTotals sums the cart into pre- and post-discount totals and applies
// the coupon, if any, to the post-discount side. Amount coupons subtract a
// flat value and clamp at zero; percentage coupons reduce proportionally and
// re-round. Passing a nil coupon prices the cart with item discounts only.
func ComputeTotals(cart models.Cart, coupon *models.Coupon) models.Totals {
	var before float64
	var after int64

	for _, item := range cart {
		before += item.Product.Price * float64(item.Quantity)
		after += ItemTotal(item, cart)
	}

	if coupon != nil {
		switch coupon.DiscountType {
		case models.DiscountAmount:
			after = int64(math.Round(float64(after) - coupon.DiscountValue))
			if after < 0 {
				after = 0
			}
		case models.DiscountPercentage:
			after = int64(math.Round(float64(after) * (1 - coupon.DiscountValue/100)))
		}
	}

	return models.Totals{
		TotalBeforeDiscount: int64(math.Round(before)),
		TotalAfterDiscount:  after,
	}
}
