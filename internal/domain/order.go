package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus validates a raw status value against the enumerated set.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	for _, s := range orderStatuses {
		if string(s) == raw {
			return s, nil
		}
	}

	return "", &InvalidStatusError{Status: raw, Allowed: orderStatuses}
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	OwnerID         uuid.UUID   `json:"owner_id"`
	Items           []OrderItem `json:"items"`
	Total           Money       `json:"total"`
	ShippingAddress string      `json:"shipping_address"`
	Status          OrderStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

// OrderItem is a value snapshot of a cart line item at placement time.
// It never changes after the order is created.
type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   Money     `json:"unit_price"`
}
