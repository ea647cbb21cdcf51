// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"github.com/andarpratama/nufaza-ewallet-test/internal/domain"
)

// TransactionRepository defines the interface for transaction record
// operations. Records are append-only; no update or delete exists.
type TransactionRepository interface {
	// CreateRecord appends a transaction record using the provided
	// DBExecutor. When called with the transaction executor of a balance
	// write, the record and the balance commit or roll back together.
	CreateRecord(ctx context.Context, q DBExecutor, record *domain.TransactionRecord) error
	// ListByAccount retrieves the account's records, most recent first,
	// along with the total count for pagination.
	ListByAccount(ctx context.Context, q DBExecutor, accountID int64, limit, offset int) ([]domain.TransactionRecord, int64, error)
}
