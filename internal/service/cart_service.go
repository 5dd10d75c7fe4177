package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
}

func NewCart(carts port.CartRepository, products port.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) GetCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
	cart, err := s.carts.GetCart(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.GetCart: %w", err)
	}

	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	// Reject unknown products up front; the cart table would otherwise
	// surface a bare foreign key violation.
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return domain.Cart{}, fmt.Errorf("products.GetByID: %w", err)
	}

	if err := s.carts.AddItem(ctx, ownerID, productID, quantity); err != nil {
		return domain.Cart{}, fmt.Errorf("carts.AddItem: %w", err)
	}

	return s.GetCart(ctx, ownerID)
}

func (s *CartService) UpdateItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	updated, err := s.carts.UpdateItem(ctx, ownerID, productID, quantity)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.UpdateItem: %w", err)
	}

	if !updated {
		return domain.Cart{}, domain.ErrNotFound
	}

	return s.GetCart(ctx, ownerID)
}

func (s *CartService) RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) (domain.Cart, error) {
	deleted, err := s.carts.DeleteItem(ctx, ownerID, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.DeleteItem: %w", err)
	}

	if !deleted {
		return domain.Cart{}, domain.ErrNotFound
	}

	return s.GetCart(ctx, ownerID)
}
