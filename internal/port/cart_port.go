package port

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

type CartRepository interface {
	// GetCart resolves the owner's line items against current product data.
	// An owner without items gets an empty cart, not an error.
	GetCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error)

	// AddItem inserts a line item, merging quantities when the product is
	// already in the cart.
	AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) error

	UpdateItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) (bool, error)
	DeleteItem(ctx context.Context, ownerID, productID uuid.UUID) (bool, error)

	// DeleteCart drops all of the owner's line items. Idempotent.
	DeleteCart(ctx context.Context, ownerID uuid.UUID) error
}

type CartService interface {
	GetCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error)
	AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) (domain.Cart, error)
	UpdateItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) (domain.Cart, error)
	RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) (domain.Cart, error)
}
