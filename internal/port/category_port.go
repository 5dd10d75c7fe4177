package port

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type CategoryService interface {
	Create(ctx context.Context, name string) (domain.Category, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string) (domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
