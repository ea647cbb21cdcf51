// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andarpratama/nufaza-ewallet-test/internal/domain"
	"github.com/andarpratama/nufaza-ewallet-test/internal/repository"
	"github.com/andarpratama/nufaza-ewallet-test/internal/util"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateRecord appends a transaction record using the provided DBExecutor.
func (r *TransactionRepository) CreateRecord(ctx context.Context, q repository.DBExecutor, record *domain.TransactionRecord) error {
	query := `INSERT INTO transactions (account_id, kind, amount, reference, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		record.AccountID,
		record.Kind,
		record.Amount,
		record.Reference,
		record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to create transaction record: %v", util.ErrStorageFailure, err)
	}
	return nil
}

// ListByAccount retrieves a page of the account's records ordered by
// creation time descending, plus the total count. An account with no
// history yields an empty slice, not an error.
func (r *TransactionRepository) ListByAccount(ctx context.Context, q repository.DBExecutor, accountID int64, limit, offset int) ([]domain.TransactionRecord, int64, error) {
	records := []domain.TransactionRecord{}

	query := `
		SELECT id, account_id, kind, amount, reference, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	err := q.SelectContext(ctx, &records, query, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to fetch transactions for account %d: %v", util.ErrStorageFailure, accountID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE account_id = $1`
	err = q.GetContext(ctx, &totalCount, countQuery, accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to count transactions for account %d: %v", util.ErrStorageFailure, accountID, err)
	}

	return records, totalCount, nil
}
