// internal/api/handler/account_test.go
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andarpratama/nufaza-ewallet-test/internal/domain"
	"github.com/andarpratama/nufaza-ewallet-test/internal/util"
)

// MockAccountService is a mock implementation of service.AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, name, email string) (*domain.Account, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) CheckBalance(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Deposit(ctx context.Context, accountID, amount int64) (*domain.Account, *domain.TransactionRecord, error) {
	args := m.Called(ctx, accountID, amount)
	var account *domain.Account
	var record *domain.TransactionRecord
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	if args.Get(1) != nil {
		record = args.Get(1).(*domain.TransactionRecord)
	}
	return account, record, args.Error(2)
}

func (m *MockAccountService) Withdraw(ctx context.Context, accountID, amount int64) (*domain.Account, *domain.TransactionRecord, error) {
	args := m.Called(ctx, accountID, amount)
	var account *domain.Account
	var record *domain.TransactionRecord
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	if args.Get(1) != nil {
		record = args.Get(1).(*domain.TransactionRecord)
	}
	return account, record, args.Error(2)
}

func (m *MockAccountService) Transfer(ctx context.Context, fromAccountID, toAccountID, amount int64) (*domain.Account, *domain.Account, error) {
	args := m.Called(ctx, fromAccountID, toAccountID, amount)
	var from, to *domain.Account
	if args.Get(0) != nil {
		from = args.Get(0).(*domain.Account)
	}
	if args.Get(1) != nil {
		to = args.Get(1).(*domain.Account)
	}
	return from, to, args.Error(2)
}

func (m *MockAccountService) GetTransactions(ctx context.Context, accountID int64, limit, offset int) ([]domain.TransactionRecord, int64, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.TransactionRecord), args.Get(1).(int64), args.Error(2)
}

// newTestRouter mounts the handler under the same route patterns the
// application router uses.
func newTestRouter(svc *MockAccountService) http.Handler {
	h := NewAccountHandler(svc, NewErrorClassifier(), slog.Default())
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Route("/accounts", func(r chi.Router) {
		r.Get("/{accountID}/balance", h.CheckBalance)
		r.Post("/{accountID}/deposit", h.Deposit)
		r.Post("/{accountID}/withdraw", h.Withdraw)
		r.Post("/{accountID}/transfer", h.Transfer)
		r.Get("/{accountID}/transactions", h.GetTransactions)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestRegisterHandler(t *testing.T) {
	t.Run("CreatesAccount", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Register", mock.Anything, "Andi", "andi@example.com").
			Return(&domain.Account{ID: 1, Name: "Andi", Email: "andi@example.com", Balance: 0}, nil).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/register",
			`{"name":"Andi","email":"andi@example.com"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, float64(0), payload["balance"])
		svc.AssertExpectations(t)
	})

	t.Run("RejectsInvalidEmail", func(t *testing.T) {
		svc := new(MockAccountService)

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/register",
			`{"name":"Andi","email":"not-an-email"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DuplicateEmailConflicts", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Register", mock.Anything, "Andi", "andi@example.com").
			Return(nil, util.ErrDuplicateEmail).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/register",
			`{"name":"Andi","email":"andi@example.com"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, "DuplicateEmail", payload["error"])
		svc.AssertExpectations(t)
	})
}

func TestCheckBalanceHandler(t *testing.T) {
	t.Run("ReturnsBalance", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("CheckBalance", mock.Anything, int64(1)).
			Return(&domain.Account{ID: 1, Name: "Andi", Email: "andi@example.com", Balance: 100}, nil).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/accounts/1/balance", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, float64(100), payload["balance"])
		svc.AssertExpectations(t)
	})

	t.Run("UnknownAccountIs404", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("CheckBalance", mock.Anything, int64(999)).
			Return(nil, &util.NotFoundError{AccountID: 999}).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/accounts/999/balance", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, "AccountNotFound", payload["error"])
		assert.Equal(t, "account with id 999 not found", payload["message"])
		svc.AssertExpectations(t)
	})

	t.Run("NonNumericIDIs400", func(t *testing.T) {
		svc := new(MockAccountService)

		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/accounts/abc/balance", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "CheckBalance", mock.Anything, mock.Anything)
	})
}

func TestDepositHandler(t *testing.T) {
	t.Run("DepositsAndReportsTransaction", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Deposit", mock.Anything, int64(1), int64(50)).
			Return(
				&domain.Account{ID: 1, Balance: 150},
				&domain.TransactionRecord{ID: 11, AccountID: 1, Kind: domain.TransactionKindDeposit, Amount: 50},
				nil,
			).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/accounts/1/deposit", `{"amount":50}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, float64(150), payload["balance"])
		assert.Equal(t, float64(11), payload["transaction_id"])
		svc.AssertExpectations(t)
	})

	t.Run("ZeroAmountOmitsTransactionID", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Deposit", mock.Anything, int64(1), int64(0)).
			Return(&domain.Account{ID: 1, Balance: 100}, nil, nil).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/accounts/1/deposit", `{"amount":0}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, float64(100), payload["balance"])
		assert.NotContains(t, payload, "transaction_id")
		svc.AssertExpectations(t)
	})

	t.Run("NegativeAmountIs400", func(t *testing.T) {
		svc := new(MockAccountService)

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/accounts/1/deposit", `{"amount":-5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FractionalAmountIs422", func(t *testing.T) {
		svc := new(MockAccountService)

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/accounts/1/deposit", `{"amount":10.5}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, "InvalidAmount", payload["error"])
		svc.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWithdrawHandler(t *testing.T) {
	t.Run("InsufficientBalanceIs409", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Withdraw", mock.Anything, int64(1), int64(200)).
			Return(nil, nil, util.ErrInsufficientBalance).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/accounts/1/withdraw", `{"amount":200}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, "InsufficientBalance", payload["error"])
		assert.Equal(t, "Your balance is not enough.", payload["message"])
		svc.AssertExpectations(t)
	})

	t.Run("WithdrawsSuccessfully", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Withdraw", mock.Anything, int64(1), int64(50)).
			Return(
				&domain.Account{ID: 1, Balance: 50},
				&domain.TransactionRecord{ID: 12, Kind: domain.TransactionKindWithdraw, Amount: 50},
				nil,
			).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/accounts/1/withdraw", `{"amount":50}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, float64(50), payload["balance"])
		svc.AssertExpectations(t)
	})
}

func TestTransferHandler(t *testing.T) {
	t.Run("ReturnsBothBalances", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Transfer", mock.Anything, int64(1), int64(2), int64(25000)).
			Return(&domain.Account{ID: 1, Balance: 25000}, &domain.Account{ID: 2, Balance: 35000}, nil).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/accounts/1/transfer",
			`{"to_account_id":2,"amount":25000}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, float64(25000), payload["from_balance"])
		assert.Equal(t, float64(35000), payload["to_balance"])
		svc.AssertExpectations(t)
	})

	t.Run("SelfTransferIs400", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("Transfer", mock.Anything, int64(1), int64(1), int64(10000)).
			Return(nil, nil, util.ErrSelfTransfer).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/accounts/1/transfer",
			`{"to_account_id":1,"amount":10000}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, "SelfTransfer", payload["error"])
		assert.Equal(t, "You cannot transfer to yourself.", payload["message"])
		svc.AssertExpectations(t)
	})

	t.Run("MissingReceiverIDIs400", func(t *testing.T) {
		svc := new(MockAccountService)

		rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/accounts/1/transfer", `{"amount":100}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetTransactionsHandler(t *testing.T) {
	t.Run("EmptyHistoryIs200", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("GetTransactions", mock.Anything, int64(1), 20, 0).
			Return([]domain.TransactionRecord{}, int64(0), nil).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/accounts/1/transactions", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		payload := decodeBody(t, rec)
		assert.Equal(t, []interface{}{}, payload["data"])
		assert.Equal(t, float64(0), payload["total_count"])
		svc.AssertExpectations(t)
	})

	t.Run("ClampsPaginationParams", func(t *testing.T) {
		svc := new(MockAccountService)
		svc.On("GetTransactions", mock.Anything, int64(1), 20, 0).
			Return([]domain.TransactionRecord{}, int64(0), nil).Once()

		rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/accounts/1/transactions?limit=-3&offset=-1", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		name    string
		input   decimal.Decimal
		want    int64
		wantErr error
	}{
		{"Zero", decimal.Zero, 0, nil},
		{"WholeNumber", decimal.NewFromInt(25000), 25000, nil},
		{"Negative", decimal.NewFromInt(-1), 0, util.ErrInvalidInput},
		{"Fractional", decimal.NewFromFloat(10.5), 0, util.ErrInvalidAmount},
		{"BeyondInt64", decimal.RequireFromString("92233720368547758080"), 0, util.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := minorUnits(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
