package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID        uint64
	UserID    uint64
	Status    OrderStatus
	Total     decimal.Decimal
	CreatedAt time.Time
	Items     []OrderItem
	User      *User
}

// OrderItem is a snapshot of a cart line at the moment the order was
// placed. Later catalog edits do not touch it.
type OrderItem struct {
	ID        uint64
	OrderID   uint64
	ItemID    uint64
	Title     string
	Quantity  uint32
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
