package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type productRepository struct {
	db dbtx
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{db: pool}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{db: tx}
}

const productColumns = `id, name, description, price_amount::text, price_currency, category_id, stock, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Name == "" {
		return domain.Product{}, fmt.Errorf("name is empty")
	}
	if product.Price.IsNegative() {
		return domain.Product{}, fmt.Errorf("price is negative")
	}
	if product.Stock < 0 {
		return domain.Product{}, fmt.Errorf("stock is negative")
	}

	var categoryID uuid.NullUUID
	if product.CategoryID != uuid.Nil {
		categoryID = uuid.NullUUID{UUID: product.CategoryID, Valid: true}
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO products (name, description, price_amount, price_currency, category_id, stock)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		product.Name, product.Description,
		product.Price.Amount.String(), product.Price.Currency.String(),
		categoryID, product.Stock,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, domain.ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (r *productRepository) List(ctx context.Context, filter port.ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`

	var (
		conditions []string
		args       []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.NameSubstring != "" {
		conditions = append(conditions, `name ILIKE `+arg("%"+filter.NameSubstring+"%"))
	}
	if filter.CategoryID != uuid.Nil {
		conditions = append(conditions, `category_id = `+arg(filter.CategoryID))
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, `price_amount >= `+arg(filter.MinPrice.String())+`::numeric`)
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, `price_amount <= `+arg(filter.MaxPrice.String())+`::numeric`)
	}

	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.Name == "" {
		return domain.Product{}, fmt.Errorf("name is empty")
	}
	if product.Price.IsNegative() {
		return domain.Product{}, fmt.Errorf("price is negative")
	}
	if product.Stock < 0 {
		return domain.Product{}, fmt.Errorf("stock is negative")
	}

	var categoryID uuid.NullUUID
	if product.CategoryID != uuid.Nil {
		categoryID = uuid.NullUUID{UUID: product.CategoryID, Valid: true}
	}

	err := r.db.QueryRow(ctx,
		`UPDATE products
		 SET name = $2, description = $3, price_amount = $4, price_currency = $5,
		     category_id = $6, stock = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		product.ID, product.Name, product.Description,
		product.Price.Amount.String(), product.Price.Currency.String(),
		categoryID, product.Stock,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, domain.ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DecrementStock is a conditional write: the quantity comes off only when the
// row still holds at least that much, so a concurrent placement cannot drive
// stock negative. When the condition fails the current stock is re-read to
// build the error.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int64) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be positive")
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2`,
		id, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	var (
		name      string
		available int64
	)
	err = r.db.QueryRow(ctx, `SELECT name, stock FROM products WHERE id = $1`, id).
		Scan(&name, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("select product stock: %w", err)
	}

	return &domain.InsufficientStockError{
		ProductID:   id,
		ProductName: name,
		Available:   available,
		Requested:   quantity,
	}
}

func (r *productRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int64) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be positive")
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		id, quantity)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		product      domain.Product
		amount       string
		currencyCode string
		categoryID   uuid.NullUUID
	)

	err := row.Scan(&product.ID, &product.Name, &product.Description,
		&amount, &currencyCode, &categoryID, &product.Stock,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}

	product.Price, err = parseMoney(amount, currencyCode)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parseMoney: %w", err)
	}

	product.CategoryID = categoryID.UUID

	return product, nil
}
