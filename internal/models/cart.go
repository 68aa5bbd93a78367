package models

// CartItem is a single cart line: one product plus the quantity in the cart
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is an ordered list of line items, unique by product ID.
// Adding a product that is already present increments its quantity
// instead of creating a second line.
type Cart []CartItem

// Totals is the pre/post-discount sum pair shown at checkout.
// It is derived state: recomputed from the cart and selected coupon
// on every read, never stored.
type Totals struct {
	TotalBeforeDiscount int64 `json:"totalBeforeDiscount"`
	TotalAfterDiscount  int64 `json:"totalAfterDiscount"`
}
