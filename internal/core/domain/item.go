package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type Item struct {
	ID        uint64
	Title     string
	Price     decimal.Decimal
	CompanyID uint64
	Category  string
	CreatedAt time.Time
	Company   *Company
}
