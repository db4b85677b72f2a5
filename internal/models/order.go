package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses as exposed to the API and the staff bot.
const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
	OrderStatusRejected  = "rejected"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusActive, OrderStatusCompleted, OrderStatusRejected:
		return true
	}
	return false
}

// OrderFilter holds exact-match filters for order listings. Set fields
// are AND-combined; a zero filter matches every order.
type OrderFilter struct {
	Contact       *string
	ContactMethod *string
	Status        *string
}

type Order struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	Fullname      string       `json:"fullname" db:"fullname"`
	Contact       string       `json:"contact" db:"contact"`
	ContactMethod string       `json:"contact_method" db:"contact_method"`
	Status        string       `json:"status" db:"status"`
	Deadline      *time.Time   `json:"deadline" db:"deadline"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
	Items         []*OrderItem `json:"items,omitempty"`
}

// OrderItem pairs an order with a product variant. The (order, product)
// pair is unique: a variant appears at most once per order.
type OrderItem struct {
	ID        int64           `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Product   *ProductVariant `json:"product,omitempty"`
}

// OrderItemInput is one line of an order creation or item replacement
// payload: a variant reference plus a quantity.
type OrderItemInput struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}
