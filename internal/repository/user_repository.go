package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/port"
)

type userRepository struct {
	db dbtx
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{db: pool}
}

func NewUserWithTx(tx pgx.Tx) port.UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		user.Name, user.Email, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return r.get(ctx,
		`SELECT id, name, email, password_hash, role, created_at
		 FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	return r.get(ctx,
		`SELECT id, name, email, password_hash, role, created_at
		 FROM users WHERE email = $1`, email)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (domain.User, error) {
	var user domain.User

	err := r.db.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}

	return user, nil
}
