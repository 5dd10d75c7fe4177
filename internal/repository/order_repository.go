package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type orderRepository struct {
	db dbtx
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{db: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.OwnerID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("ownerID is empty")
	}
	if len(order.Items) == 0 {
		return domain.Order{}, fmt.Errorf("order has no items")
	}

	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO orders (owner_id, total_amount, total_currency, shipping_address, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		order.OwnerID, order.Total.Amount.String(), order.Total.Currency.String(),
		order.ShippingAddress, order.Status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, item := range order.Items {
		batch.Queue(
			`INSERT INTO order_items (order_id, product_id, product_name, unit_amount, unit_currency, quantity)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, item.ProductID, item.ProductName,
			item.UnitPrice.Amount.String(), item.UnitPrice.Currency.String(), item.Quantity)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return domain.Order{}, fmt.Errorf("insert order items: %w", err)
	}

	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	order, err := r.scanOrderRow(r.db.QueryRow(ctx,
		`SELECT id, owner_id, total_amount::text, total_currency, shipping_address, status, created_at
		 FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	order.Items, err = r.loadItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("loadItems: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Order, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("ownerID is empty")
	}

	return r.list(ctx,
		`SELECT id, owner_id, total_amount::text, total_currency, shipping_address, status, created_at
		 FROM orders WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx,
		`SELECT id, owner_id, total_amount::text, total_currency, shipping_address, status, created_at
		 FROM orders ORDER BY created_at DESC`)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	order, err := r.scanOrderRow(r.db.QueryRow(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1
		 RETURNING id, owner_id, total_amount::text, total_currency, shipping_address, status, created_at`,
		id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, domain.ErrNotFound
		}
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}

	order.Items, err = r.loadItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("loadItems: %w", err)
	}

	return order, nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := r.scanOrderRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanOrderRow: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	for i := range orders {
		orders[i].Items, err = r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("loadItems: %w", err)
		}
	}

	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT product_id, product_name, unit_amount::text, unit_currency, quantity
		 FROM order_items WHERE order_id = $1 ORDER BY product_name, product_id`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item         domain.OrderItem
			amount       string
			currencyCode string
		)
		if err := rows.Scan(&item.ProductID, &item.ProductName, &amount, &currencyCode, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}

		item.UnitPrice, err = parseMoney(amount, currencyCode)
		if err != nil {
			return nil, fmt.Errorf("parseMoney: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}

func (r *orderRepository) scanOrderRow(row pgx.Row) (domain.Order, error) {
	var (
		order        domain.Order
		amount       string
		currencyCode string
	)

	err := row.Scan(&order.ID, &order.OwnerID, &amount, &currencyCode,
		&order.ShippingAddress, &order.Status, &order.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}

	order.Total, err = parseMoney(amount, currencyCode)
	if err != nil {
		return domain.Order{}, fmt.Errorf("parseMoney: %w", err)
	}

	return order, nil
}
