package models

// Discount is a quantity-based discount tier: buying at least Quantity units
// of a product makes Rate applicable to that line item.
type Discount struct {
	Quantity int     `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// Product represents an item available in the store catalog
// Prices are in whole currency units; Stock bounds cart quantities
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	Discounts   []Discount `json:"discounts"`
	Description string     `json:"description,omitempty"`
}
