package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/port"
	"storefront/internal/repository"
)

// OrderService owns the order lifecycle. Placement and cancellation span
// several tables, so the service holds the pool and runs them through
// repository.WithTx; reads go through a plain repository.
type OrderService struct {
	pool   *pgxpool.Pool
	orders port.OrderRepository
}

func NewOrder(pool *pgxpool.Pool) *OrderService {
	return &OrderService{
		pool:   pool,
		orders: repository.NewOrder(pool),
	}
}

// PlaceOrder converts the owner's cart into an order.
//
// Everything runs in one transaction: the cart snapshot (with current prices
// and stock), a validation pass over every line item, the conditional stock
// decrements, the order insert and the cart deletion. Any failure at any
// point rolls it all back, so stock is never deducted without a matching
// order and the cart survives a failed placement untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, ownerID uuid.UUID, shippingAddress string) (domain.Order, error) {
	if ownerID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("%w: ownerID is empty", ErrInvalidInput)
	}

	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return domain.Order{}, fmt.Errorf("%w: shipping address is required", ErrInvalidInput)
	}

	return repository.WithTx(ctx, s.pool, func(tx pgx.Tx) (domain.Order, error) {
		carts := repository.NewCartWithTx(tx)
		products := repository.NewProductWithTx(tx)
		orders := repository.NewOrderWithTx(tx)

		cart, err := carts.GetCart(ctx, ownerID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("carts.GetCart: %w", err)
		}

		if cart.IsEmpty() {
			return domain.Order{}, domain.ErrEmptyCart
		}

		// Validation pass. Nothing is mutated until every line item checks
		// out, so a failure here leaves no trace. Unit prices are captured
		// from this same snapshot.
		var total domain.Money
		items := make([]domain.OrderItem, 0, len(cart.Items))

		for i, item := range cart.Items {
			if item.Quantity > item.Stock {
				return domain.Order{}, &domain.InsufficientStockError{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Available:   item.Stock,
					Requested:   item.Quantity,
				}
			}

			line := item.UnitPrice.Mul(item.Quantity)
			if i == 0 {
				total = line
			} else {
				total, err = total.Add(line)
				if err != nil {
					return domain.Order{}, ErrMixedCurrencies
				}
			}

			items = append(items, domain.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}

		// Mutation pass, in cart order. The decrement re-checks stock at
		// write time, so a placement racing this one cannot oversell: the
		// loser fails here and the transaction rolls back.
		for _, item := range cart.Items {
			if err := products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return domain.Order{}, fmt.Errorf("products.DecrementStock: %w", err)
			}
		}

		order, err := orders.Create(ctx, domain.Order{
			OwnerID:         ownerID,
			Items:           items,
			Total:           total,
			ShippingAddress: shippingAddress,
			Status:          domain.OrderStatusPending,
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("orders.Create: %w", err)
		}

		if err := carts.DeleteCart(ctx, ownerID); err != nil {
			return domain.Order{}, fmt.Errorf("carts.DeleteCart: %w", err)
		}

		return order, nil
	})
}

func (s *OrderService) GetOrder(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetByID: %w", err)
	}

	if order.OwnerID != requesterID && role != domain.RoleAdmin {
		return domain.Order{}, domain.ErrForbidden
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, ownerID uuid.UUID) ([]domain.Order, error) {
	orders, err := s.orders.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListByOwner: %w", err)
	}

	return orders, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders.ListAll: %w", err)
	}

	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (domain.Order, error) {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, parsed)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.UpdateStatus: %w", err)
	}

	return order, nil
}

// CancelOrder returns a pending order's stock to the ledger and marks it
// cancelled. Owner or admin only; anything past pending is no longer
// cancellable this way.
func (s *OrderService) CancelOrder(ctx context.Context, requesterID uuid.UUID, role domain.Role, orderID uuid.UUID) (domain.Order, error) {
	return repository.WithTx(ctx, s.pool, func(tx pgx.Tx) (domain.Order, error) {
		orders := repository.NewOrderWithTx(tx)
		products := repository.NewProductWithTx(tx)

		order, err := orders.GetByID(ctx, orderID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("orders.GetByID: %w", err)
		}

		if order.OwnerID != requesterID && role != domain.RoleAdmin {
			return domain.Order{}, domain.ErrForbidden
		}

		if order.Status != domain.OrderStatusPending {
			return domain.Order{}, ErrInvalidState
		}

		for _, item := range order.Items {
			if err := products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return domain.Order{}, fmt.Errorf("products.IncrementStock: %w", err)
			}
		}

		order, err = orders.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled)
		if err != nil {
			return domain.Order{}, fmt.Errorf("orders.UpdateStatus: %w", err)
		}

		return order, nil
	})
}
