package domain

import "time"

type Cart struct {
	ID        uint64
	UserID    uint64
	CreatedAt time.Time
	Items     []CartItem
}

type CartItem struct {
	ID       uint64
	CartID   uint64
	ItemID   uint64
	Quantity uint32
	Item     *Item
}
