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

type categoryRepository struct {
	db dbtx
}

func NewCategory(pool *pgxpool.Pool) port.CategoryRepository {
	return &categoryRepository{db: pool}
}

func NewCategoryWithTx(tx pgx.Tx) port.CategoryRepository {
	return &categoryRepository{db: tx}
}

func (r *categoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	if category.Name == "" {
		return domain.Category{}, fmt.Errorf("name is empty")
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at`,
		category.Name,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	var category domain.Category

	err := r.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = $1`, id,
	).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, fmt.Errorf("select category: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	if category.Name == "" {
		return domain.Category{}, fmt.Errorf("name is empty")
	}

	err := r.db.QueryRow(ctx,
		`UPDATE categories SET name = $2 WHERE id = $1 RETURNING created_at`,
		category.ID, category.Name,
	).Scan(&category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
