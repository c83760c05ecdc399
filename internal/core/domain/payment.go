package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID        uint64
	UserID    uint64
	OrderID   uint64
	Amount    decimal.Decimal
	Status    PaymentStatus
	CreatedAt time.Time
	Order     *Order
}
