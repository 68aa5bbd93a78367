package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shophub/cart-service/internal/models"
	"github.com/shophub/cart-service/pkg/localstore"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// productsKey is the persisted-store key holding the product list
const productsKey = "products"

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product models.Product) error
	Update(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id string) error
}

// LocalProductRepository implements ProductRepository backed by the local
// JSON store. The full list is loaded at construction and written back
// after every mutation; insertion order is preserved.
type LocalProductRepository struct {
	mu       sync.RWMutex
	store    *localstore.Store
	products []models.Product
}

// NewLocalProductRepository loads the persisted product list, seeding the
// demo catalog when nothing has been saved yet.
func NewLocalProductRepository(store *localstore.Store) (*LocalProductRepository, error) {
	r := &LocalProductRepository{store: store}

	err := store.Load(productsKey, &r.products)
	if errors.Is(err, localstore.ErrKeyNotFound) {
		r.products = seedProducts()
		if err := store.Save(productsKey, r.products); err != nil {
			return nil, fmt.Errorf("failed to seed products: %w", err)
		}
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return r, nil
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:          "p1",
			Name:        "Premium Tumbler",
			Price:       10000,
			Stock:       20,
			Discounts:   []models.Discount{{Quantity: 10, Rate: 0.1}, {Quantity: 20, Rate: 0.2}},
			Description: "Double-walled stainless tumbler, 500ml",
		},
		{
			ID:          "p2",
			Name:        "Canvas Tote Bag",
			Price:       20000,
			Stock:       20,
			Discounts:   []models.Discount{{Quantity: 10, Rate: 0.15}},
			Description: "Heavyweight cotton tote with inner pocket",
		},
		{
			ID:          "p3",
			Name:        "Desk Organizer",
			Price:       30000,
			Stock:       20,
			Discounts:   []models.Discount{{Quantity: 10, Rate: 0.2}},
			Description: "Walnut desk organizer with pen tray",
		},
	}
}

// GetAll returns all products in insertion order
func (r *LocalProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns a product by its ID
func (r *LocalProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Create appends a product and persists the list
func (r *LocalProductRepository) Create(ctx context.Context, product models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append(r.products, product)
	return r.save()
}

// Update replaces the product with the same ID and persists the list
func (r *LocalProductRepository) Update(ctx context.Context, product models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			return r.save()
		}
	}
	return ErrProductNotFound
}

// Delete removes the product with the given ID and persists the list
func (r *LocalProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return r.save()
		}
	}
	return ErrProductNotFound
}

func (r *LocalProductRepository) save() error {
	if err := r.store.Save(productsKey, r.products); err != nil {
		return fmt.Errorf("failed to persist products: %w", err)
	}
	return nil
}
