package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type ProductService struct {
	products   port.ProductRepository
	categories port.CategoryRepository
}

func NewProduct(products port.ProductRepository, categories port.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

func (s *ProductService) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := s.validate(ctx, product); err != nil {
		return domain.Product{}, err
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Create: %w", err)
	}

	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetByID: %w", err)
	}

	return product, nil
}

func (s *ProductService) List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("products.List: %w", err)
	}

	return products, nil
}

func (s *ProductService) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := s.validate(ctx, product); err != nil {
		return domain.Product{}, err
	}

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Update: %w", err)
	}

	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("products.Delete: %w", err)
	}

	if !deleted {
		return domain.ErrNotFound
	}

	return nil
}

func (s *ProductService) validate(ctx context.Context, product domain.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if product.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}

	if product.CategoryID != uuid.Nil {
		if _, err := s.categories.GetByID(ctx, product.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: category does not exist", ErrInvalidInput)
			}
			return fmt.Errorf("categories.GetByID: %w", err)
		}
	}

	return nil
}
