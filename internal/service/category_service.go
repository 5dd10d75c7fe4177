package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type CategoryService struct {
	categories port.CategoryRepository
}

func NewCategory(categories port.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, name string) (domain.Category, error) {
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	category, err := s.categories.Create(ctx, domain.Category{Name: name})
	if err != nil {
		return domain.Category{}, fmt.Errorf("categories.Create: %w", err)
	}

	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("categories.GetByID: %w", err)
	}

	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories.List: %w", err)
	}

	return categories, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name string) (domain.Category, error) {
	if name == "" {
		return domain.Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	category, err := s.categories.Update(ctx, domain.Category{ID: id, Name: name})
	if err != nil {
		return domain.Category{}, fmt.Errorf("categories.Update: %w", err)
	}

	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("categories.Delete: %w", err)
	}

	if !deleted {
		return domain.ErrNotFound
	}

	return nil
}
