// internal/repository/postgres/account_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/andarpratama/nufaza-ewallet-test/internal/domain"
	"github.com/andarpratama/nufaza-ewallet-test/internal/repository"
	"github.com/andarpratama/nufaza-ewallet-test/internal/util"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint
// breach, raised when registering an already-used email.
const uniqueViolation = "23505"

// AccountRepository implements repository.AccountRepository for PostgreSQL.
type AccountRepository struct{}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &AccountRepository{}
}

// CreateAccount inserts a new account using the provided DBExecutor.
func (r *AccountRepository) CreateAccount(ctx context.Context, q repository.DBExecutor, account *domain.Account) error {
	query := `INSERT INTO accounts (name, email, balance, created_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query, account.Name, account.Email, account.Balance, account.CreatedAt).Scan(&account.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("email %q: %w", account.Email, util.ErrDuplicateEmail)
		}
		return fmt.Errorf("%w: failed to create account: %v", util.ErrStorageFailure, err)
	}
	return nil
}

// GetAccountByID retrieves an account by its id using the provided DBExecutor.
func (r *AccountRepository) GetAccountByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT id, name, email, balance, created_at FROM accounts WHERE id = $1`
	err := q.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &util.NotFoundError{AccountID: id}
		}
		return nil, fmt.Errorf("%w: failed to get account %d: %v", util.ErrStorageFailure, id, err)
	}
	return &account, nil
}

// CreditBalance adds amount to the account's balance as a single atomic
// row update, so concurrent credits never lose an increment.
func (r *AccountRepository) CreditBalance(ctx context.Context, q repository.DBExecutor, accountID, amount int64) error {
	query := `UPDATE accounts SET balance = balance + $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, amount, accountID)
	if err != nil {
		return fmt.Errorf("%w: failed to credit account %d: %v", util.ErrStorageFailure, accountID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to read rows affected crediting account %d: %v", util.ErrStorageFailure, accountID, err)
	}
	if rowsAffected == 0 {
		return &util.NotFoundError{AccountID: accountID}
	}
	return nil
}

// DebitBalance subtracts amount from the account's balance. The balance
// guard lives in the same UPDATE, which the store executes as one
// indivisible operation; zero rows affected means the balance no longer
// covers the amount.
func (r *AccountRepository) DebitBalance(ctx context.Context, q repository.DBExecutor, accountID, amount int64) error {
	query := `UPDATE accounts SET balance = balance - $1 WHERE id = $2 AND balance >= $1`
	result, err := q.ExecContext(ctx, query, amount, accountID)
	if err != nil {
		return fmt.Errorf("%w: failed to debit account %d: %v", util.ErrStorageFailure, accountID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to read rows affected debiting account %d: %v", util.ErrStorageFailure, accountID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account %d: %w", accountID, util.ErrInsufficientBalance)
	}
	return nil
}
