// internal/service/account_service.go
package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/andarpratama/nufaza-ewallet-test/internal/domain"
	"github.com/andarpratama/nufaza-ewallet-test/internal/repository"
	"github.com/andarpratama/nufaza-ewallet-test/internal/util"
	"github.com/andarpratama/nufaza-ewallet-test/pkg/db"
)

// AccountService defines the business logic for account balances.
// Amounts are int64 minor units, already validated by the HTTP
// boundary; the service enforces only business-level bounds (existence,
// sufficiency, overflow, non-negative result).
type AccountService interface {
	Register(ctx context.Context, name, email string) (*domain.Account, error)
	CheckBalance(ctx context.Context, accountID int64) (*domain.Account, error)
	Deposit(ctx context.Context, accountID, amount int64) (*domain.Account, *domain.TransactionRecord, error)
	Withdraw(ctx context.Context, accountID, amount int64) (*domain.Account, *domain.TransactionRecord, error)
	Transfer(ctx context.Context, fromAccountID, toAccountID, amount int64) (*domain.Account, *domain.Account, error)
	GetTransactions(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransactionRecord, int64, error)
}

// accountService implements the AccountService interface.
type accountService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g. *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g. *sqlx.DB)
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) AccountService {
	return &accountService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// Register creates a new account with a zero balance. A duplicate email
// surfaces as util.ErrDuplicateEmail from the unique constraint.
func (s *accountService) Register(ctx context.Context, name, email string) (*domain.Account, error) {
	account := domain.NewAccount(name, email)
	if err := s.accountRepo.CreateAccount(ctx, s.dbExecutor, account); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return account, nil
}

// CheckBalance returns the account with its current balance. Read-only.
func (s *accountService) CheckBalance(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, accountID)
	if err != nil {
		return nil, fmt.Errorf("check balance: %w", err)
	}
	return account, nil
}

// Deposit adds amount to the account's balance and appends one DEPOSIT
// record, atomically. A zero amount is an observable read, not a
// mutation: the unchanged account is returned and no record is written.
func (s *accountService) Deposit(ctx context.Context, accountID, amount int64) (*domain.Account, *domain.TransactionRecord, error) {
	if amount < 0 {
		return nil, nil, fmt.Errorf("deposit: %w", util.ErrInvalidAmount)
	}
	if amount == 0 {
		account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, accountID)
		if err != nil {
			return nil, nil, fmt.Errorf("deposit: %w", err)
		}
		return account, nil, nil
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	account, err := s.accountRepo.GetAccountByID(ctx, txExecutor, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: %w", err)
	}
	if account.Balance > math.MaxInt64-amount {
		return nil, nil, fmt.Errorf("deposit: balance would overflow: %w", util.ErrInvalidAmount)
	}

	if err := s.accountRepo.CreditBalance(ctx, txExecutor, accountID, amount); err != nil {
		return nil, nil, fmt.Errorf("deposit: %w", err)
	}

	record := domain.NewTransactionRecord(accountID, domain.TransactionKindDeposit, amount, uuid.New())
	if err := s.transactionRepo.CreateRecord(ctx, txExecutor, record); err != nil {
		return nil, nil, fmt.Errorf("deposit: %w", err)
	}

	updatedAccount, err := s.accountRepo.GetAccountByID(ctx, txExecutor, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to re-fetch account %d: %w", accountID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to commit transaction: %w", err)
	}

	return updatedAccount, record, nil
}

// Withdraw subtracts amount from the account's balance and appends one
// WITHDRAW record, atomically. Withdrawing the exact balance is valid;
// anything above it is util.ErrInsufficientBalance with no mutation.
// The zero-amount policy matches Deposit.
func (s *accountService) Withdraw(ctx context.Context, accountID, amount int64) (*domain.Account, *domain.TransactionRecord, error) {
	if amount < 0 {
		return nil, nil, fmt.Errorf("withdraw: %w", util.ErrInvalidAmount)
	}
	if amount == 0 {
		account, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, accountID)
		if err != nil {
			return nil, nil, fmt.Errorf("withdraw: %w", err)
		}
		return account, nil, nil
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("withdraw: transaction controller does not implement DBExecutor")
	}

	account, err := s.accountRepo.GetAccountByID(ctx, txExecutor, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: %w", err)
	}
	if account.Balance < amount {
		return nil, nil, fmt.Errorf("withdraw: account %d: %w", accountID, util.ErrInsufficientBalance)
	}

	if err := s.accountRepo.DebitBalance(ctx, txExecutor, accountID, amount); err != nil {
		return nil, nil, fmt.Errorf("withdraw: %w", err)
	}

	record := domain.NewTransactionRecord(accountID, domain.TransactionKindWithdraw, amount, uuid.New())
	if err := s.transactionRepo.CreateRecord(ctx, txExecutor, record); err != nil {
		return nil, nil, fmt.Errorf("withdraw: %w", err)
	}

	updatedAccount, err := s.accountRepo.GetAccountByID(ctx, txExecutor, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to re-fetch account %d: %w", accountID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("withdraw: failed to commit transaction: %w", err)
	}

	return updatedAccount, record, nil
}

// Transfer moves amount from one account to another. Both balance
// updates and both records (TRANSFER_OUT on the sender, TRANSFER_IN on
// the receiver, sharing one reference) are submitted as a single
// database transaction, so no observer ever sees one side applied
// without the other. The self-transfer check runs before any lookup,
// and the sender is resolved before the receiver.
func (s *accountService) Transfer(ctx context.Context, fromAccountID, toAccountID, amount int64) (*domain.Account, *domain.Account, error) {
	if fromAccountID == toAccountID {
		return nil, nil, fmt.Errorf("transfer: %w", util.ErrSelfTransfer)
	}
	if amount < 0 {
		return nil, nil, fmt.Errorf("transfer: %w", util.ErrInvalidAmount)
	}
	if amount == 0 {
		// Same policy as Deposit/Withdraw: an observable read of both
		// sides, no mutation, no records. Sender resolved first.
		fromAccount, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, fromAccountID)
		if err != nil {
			return nil, nil, fmt.Errorf("transfer: sender: %w", err)
		}
		toAccount, err := s.accountRepo.GetAccountByID(ctx, s.dbExecutor, toAccountID)
		if err != nil {
			return nil, nil, fmt.Errorf("transfer: receiver: %w", err)
		}
		return fromAccount, toAccount, nil
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("transfer: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("transfer: transaction controller does not implement DBExecutor")
	}

	fromAccount, err := s.accountRepo.GetAccountByID(ctx, txExecutor, fromAccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("transfer: sender: %w", err)
	}
	toAccount, err := s.accountRepo.GetAccountByID(ctx, txExecutor, toAccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("transfer: receiver: %w", err)
	}

	if fromAccount.Balance < amount {
		return nil, nil, fmt.Errorf("transfer: account %d: %w", fromAccountID, util.ErrInsufficientBalance)
	}
	if toAccount.Balance > math.MaxInt64-amount {
		return nil, nil, fmt.Errorf("transfer: receiver balance would overflow: %w", util.ErrInvalidAmount)
	}

	if err := s.accountRepo.DebitBalance(ctx, txExecutor, fromAccountID, amount); err != nil {
		return nil, nil, fmt.Errorf("transfer: %w", err)
	}
	if err := s.accountRepo.CreditBalance(ctx, txExecutor, toAccountID, amount); err != nil {
		return nil, nil, fmt.Errorf("transfer: %w", err)
	}

	reference := uuid.New()
	outRecord := domain.NewTransactionRecord(fromAccountID, domain.TransactionKindTransferOut, amount, reference)
	if err := s.transactionRepo.CreateRecord(ctx, txExecutor, outRecord); err != nil {
		return nil, nil, fmt.Errorf("transfer: %w", err)
	}
	inRecord := domain.NewTransactionRecord(toAccountID, domain.TransactionKindTransferIn, amount, reference)
	if err := s.transactionRepo.CreateRecord(ctx, txExecutor, inRecord); err != nil {
		return nil, nil, fmt.Errorf("transfer: %w", err)
	}

	updatedFromAccount, err := s.accountRepo.GetAccountByID(ctx, txExecutor, fromAccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("transfer: failed to re-fetch sender %d: %w", fromAccountID, err)
	}
	updatedToAccount, err := s.accountRepo.GetAccountByID(ctx, txExecutor, toAccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("transfer: failed to re-fetch receiver %d: %w", toAccountID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("transfer: failed to commit transaction: %w", err)
	}

	return updatedFromAccount, updatedToAccount, nil
}

// GetTransactions returns a page of the account's history, most recent
// first. It does not validate account existence; an unknown account
// simply has no history.
func (s *accountService) GetTransactions(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransactionRecord, int64, error) {
	records, totalCount, err := s.transactionRepo.ListByAccount(ctx, s.dbExecutor, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("get transactions: %w", err)
	}
	return records, totalCount, nil
}
