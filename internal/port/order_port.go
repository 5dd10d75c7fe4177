package port

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (domain.Order, error)
}

type OrderService interface {
	// PlaceOrder converts the owner's cart into an order: validates stock,
	// deducts it, computes the total, persists the order and clears the cart
	// as one atomic unit.
	PlaceOrder(ctx context.Context, ownerID uuid.UUID, shippingAddress string) (domain.Order, error)

	// GetOrder authorizes the requester as owner or admin.
	GetOrder(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error)

	ListOrders(ctx context.Context, ownerID uuid.UUID) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (domain.Order, error)
	CancelOrder(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error)
}
