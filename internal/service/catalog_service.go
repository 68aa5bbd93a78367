package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shophub/cart-service/internal/models"
	"github.com/shophub/cart-service/internal/notify"
	"github.com/shophub/cart-service/internal/repository"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
)

// CatalogService handles catalog browsing and product administration
type CatalogService struct {
	repo repository.ProductRepository
	sink notify.Sink
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.ProductRepository, sink notify.Sink) *CatalogService {
	return &CatalogService{
		repo: repo,
		sink: sink,
	}
}

// ListProducts returns the catalog, filtered by the optional search term.
// The filter is a case-insensitive substring match over product name and
// description; an empty term returns everything.
func (s *CatalogService) ListProducts(ctx context.Context, searchTerm string) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterBySearchTerm(products, searchTerm), nil
}

// GetProduct returns a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// AddProduct validates and stores a new product, assigning it an ID
func (s *CatalogService) AddProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	product.ID = "p-" + uuid.New().String()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.sink.Push(notify.LevelSuccess, "product added")
	return &product, nil
}

// UpdateProduct validates and replaces an existing product
func (s *CatalogService) UpdateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.sink.Push(notify.LevelSuccess, "product updated")
	return &product, nil
}

// DeleteProduct removes a product from the catalog
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.sink.Push(notify.LevelSuccess, "product deleted")
	return nil
}

func validateProduct(p models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must be non-negative", ErrInvalidProduct)
	}
	for _, d := range p.Discounts {
		if d.Quantity <= 0 {
			return fmt.Errorf("%w: discount tier quantity must be positive", ErrInvalidProduct)
		}
		if d.Rate < 0 || d.Rate >= 1 {
			return fmt.Errorf("%w: discount tier rate must be in [0, 1)", ErrInvalidProduct)
		}
	}
	return nil
}

// filterBySearchTerm is the canonical catalog search filter
func filterBySearchTerm(products []models.Product, term string) []models.Product {
	if term == "" {
		return products
	}

	lower := strings.ToLower(term)
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			(p.Description != "" && strings.Contains(strings.ToLower(p.Description), lower)) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
