package domain

import "time"

const (
	CompanyRegStatusActive    = "active"
	CompanyRegStatusSuspended = "suspended"
	CompanyRegStatusClosed    = "closed"
)

// Company is a registry entry for a legal entity. Kind and Category carry
// the registry classification (bank, government, national company and so
// on), RegStatus the registration state.
type Company struct {
	ID        uint64
	Name      string
	BIN       string
	Kind      string
	Category  string
	RegStatus string
	Verified  bool
	CreatedAt time.Time
}

// CompanyLookup is the answer to a registry query by BIN. Company is nil
// when the BIN is well formed but nobody is registered under it.
type CompanyLookup struct {
	BIN         string
	ValidFormat bool
	Company     *Company
}
