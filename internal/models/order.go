package models

// Order is the receipt produced when a cart is checked out.
// It snapshots the line items and totals at the moment of completion;
// the cart itself is cleared afterwards.
type Order struct {
	Number     string     `json:"number"`
	Items      []CartItem `json:"items"`
	Totals     Totals     `json:"totals"`
	CouponCode string     `json:"couponCode,omitempty"`
}
