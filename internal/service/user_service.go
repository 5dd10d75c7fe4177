package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/port"
)

type UserService struct {
	users  port.UserRepository
	issuer *auth.Issuer
}

func NewUser(users port.UserRepository, issuer *auth.Issuer) *UserService {
	return &UserService{users: users, issuer: issuer}
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return domain.User{}, "", fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("users.Create: %w", err)
	}

	token, err := s.issuer.Issue(auth.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("issuer.Issue: %w", err)
	}

	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists.
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("users.GetByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(auth.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", fmt.Errorf("issuer.Issue: %w", err)
	}

	return token, nil
}

func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("users.GetByID: %w", err)
	}

	return user, nil
}
