package domain

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the set of line items owned by one user. There is at most one cart
// per user: items are keyed by owner.
type Cart struct {
	OwnerID uuid.UUID  `json:"owner_id"`
	Items   []CartItem `json:"items"`
}

// CartItem is a line item resolved against the current product row: unit
// price and available stock reflect the product at read time.
type CartItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   Money     `json:"unit_price"`
	Stock       int64     `json:"stock"`

	CreatedAt time.Time `json:"created_at"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
