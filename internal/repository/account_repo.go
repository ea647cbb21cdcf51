// internal/repository/account_repo.go
package repository

import (
	"context"

	"github.com/andarpratama/nufaza-ewallet-test/internal/domain"
)

// AccountRepository defines the interface for account data operations.
// Every method takes a DBExecutor so it can run either standalone or as
// part of a multi-row transaction.
type AccountRepository interface {
	// CreateAccount inserts a new account and fills in its store-assigned id.
	CreateAccount(ctx context.Context, q DBExecutor, account *domain.Account) error
	// GetAccountByID retrieves an account by its id.
	GetAccountByID(ctx context.Context, q DBExecutor, id int64) (*domain.Account, error)
	// CreditBalance atomically adds amount to the account's balance.
	CreditBalance(ctx context.Context, q DBExecutor, accountID, amount int64) error
	// DebitBalance atomically subtracts amount from the account's balance.
	// The subtraction is conditional on the balance covering the amount,
	// so a concurrent debit can never drive the balance negative.
	DebitBalance(ctx context.Context, q DBExecutor, accountID, amount int64) error
}
