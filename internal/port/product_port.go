package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// ProductFilter narrows product listings. Zero values mean "no constraint".
type ProductFilter struct {
	NameSubstring string
	CategoryID    uuid.UUID
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
}

type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// DecrementStock atomically subtracts quantity from the product's stock,
	// failing with InsufficientStockError when stock < quantity at write time.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int64) error

	// IncrementStock returns previously deducted stock, e.g. on cancellation.
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int64) error
}

type ProductService interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
