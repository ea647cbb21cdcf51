// internal/domain/account.go
package domain

import "time"

// Account represents a registered account holding a balance.
// Balance is stored as an int64 in minor currency units (e.g. cents)
// to avoid floating-point rounding; it is never negative.
type Account struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"` // Unique
	Balance   int64     `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewAccount creates a new Account with a zero balance.
func NewAccount(name, email string) *Account {
	return &Account{
		Name:      name,
		Email:     email,
		Balance:   0,
		CreatedAt: time.Now().UTC(),
	}
}
