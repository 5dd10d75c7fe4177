package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrForbidden          = errors.New("not authorized")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InsufficientStockError names the offending product along with what was
// available and what was requested.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

// InvalidStatusError reports a status outside the enumerated set.
type InvalidStatusError struct {
	Status  string
	Allowed []OrderStatus
}

func (e *InvalidStatusError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = string(s)
	}

	return fmt.Sprintf("invalid status %q, allowed values: %s", e.Status, strings.Join(allowed, ", "))
}
