// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind defines the kind of a transaction record.
type TransactionKind string

const (
	TransactionKindDeposit     TransactionKind = "DEPOSIT"
	TransactionKindWithdraw    TransactionKind = "WITHDRAW"
	TransactionKindTransferIn  TransactionKind = "TRANSFER_IN"
	TransactionKindTransferOut TransactionKind = "TRANSFER_OUT"
)

// TransactionRecord is the immutable audit entry written alongside every
// accepted balance mutation. Records are append-only: nothing in this
// codebase updates or deletes one. The two legs of a transfer share a
// Reference so they can be correlated later.
type TransactionRecord struct {
	ID        int64           `db:"id" json:"id"`
	AccountID int64           `db:"account_id" json:"account_id"`
	Kind      TransactionKind `db:"kind" json:"kind"`
	Amount    int64           `db:"amount" json:"amount"` // Minor units, always > 0
	Reference uuid.UUID       `db:"reference" json:"reference"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewTransactionRecord creates a record for an accepted mutation.
func NewTransactionRecord(accountID int64, kind TransactionKind, amount int64, reference uuid.UUID) *TransactionRecord {
	return &TransactionRecord{
		AccountID: accountID,
		Kind:      kind,
		Amount:    amount,
		Reference: reference,
		CreatedAt: time.Now().UTC(),
	}
}
