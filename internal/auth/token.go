package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storefront/internal/domain"
)

// Identity is the authenticated caller as established by the HTTP layer.
// Services authorize against it; they never see credentials.
type Identity struct {
	UserID uuid.UUID
	Role   domain.Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies bearer tokens. HS256 with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret is empty")
	}

	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

func (i *Issuer) Issue(identity Identity) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, nil
}

func (i *Issuer) Verify(raw string) (Identity, error) {
	var c claims

	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("jwt.ParseWithClaims: %w", err)
	}

	if !token.Valid {
		return Identity{}, errors.New("token is not valid")
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("uuid.Parse subject: %w", err)
	}

	return Identity{UserID: userID, Role: domain.Role(c.Role)}, nil
}
