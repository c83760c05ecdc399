package domain

import "time"

// User is an account holder. The BIN doubles as the login identifier.
type User struct {
	ID        uint64
	BIN       string
	Email     string
	Password  string
	Verified  bool
	CreatedAt time.Time
}
