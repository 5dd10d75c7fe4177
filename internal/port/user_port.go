package port

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

type UserService interface {
	Register(ctx context.Context, name, email, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, userID uuid.UUID) (domain.User, error)
}
