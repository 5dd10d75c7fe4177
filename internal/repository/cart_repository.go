package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type cartRepository struct {
	db dbtx
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{db: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{db: tx}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID uuid.UUID) (domain.Cart, error) {
	if ownerID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	rows, err := r.db.Query(ctx,
		`SELECT ci.product_id, p.name, ci.quantity, p.price_amount::text, p.price_currency, p.stock, ci.created_at
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.owner_id = $1
		 ORDER BY ci.created_at, ci.product_id`,
		ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("select cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("scanCartItem: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("rows.Err: %w", err)
	}

	return domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) error {
	if ownerID == uuid.Nil {
		return fmt.Errorf("ownerID is empty")
	}
	if quantity < 1 {
		return fmt.Errorf("quantity must be positive")
	}

	// Repeated adds of the same product merge quantities.
	_, err := r.db.Exec(ctx,
		`INSERT INTO cart_items (owner_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (owner_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		ownerID, productID, quantity)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) UpdateItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int64) (bool, error) {
	if ownerID == uuid.Nil {
		return false, fmt.Errorf("ownerID is empty")
	}
	if quantity < 1 {
		return false, fmt.Errorf("quantity must be positive")
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $3 WHERE owner_id = $1 AND product_id = $2`,
		ownerID, productID, quantity)
	if err != nil {
		return false, fmt.Errorf("update cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, ownerID, productID uuid.UUID) (bool, error) {
	if ownerID == uuid.Nil {
		return false, fmt.Errorf("ownerID is empty")
	}

	tag, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE owner_id = $1 AND product_id = $2`,
		ownerID, productID)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return fmt.Errorf("ownerID is empty")
	}

	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	return nil
}

func scanCartItem(row pgx.Row) (domain.CartItem, error) {
	var (
		item         domain.CartItem
		amount       string
		currencyCode string
	)

	err := row.Scan(&item.ProductID, &item.ProductName, &item.Quantity,
		&amount, &currencyCode, &item.Stock, &item.CreatedAt)
	if err != nil {
		return domain.CartItem{}, err
	}

	item.UnitPrice, err = parseMoney(amount, currencyCode)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("parseMoney: %w", err)
	}

	return item, nil
}
