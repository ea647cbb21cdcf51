// internal/api/handler/account.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/andarpratama/nufaza-ewallet-test/internal/api/types"
	"github.com/andarpratama/nufaza-ewallet-test/internal/domain"
	"github.com/andarpratama/nufaza-ewallet-test/internal/service"
	"github.com/andarpratama/nufaza-ewallet-test/internal/util"
)

// DefaultTimeout bounds request handling at the router level.
const DefaultTimeout = 60 * time.Second

// AccountHandler handles HTTP requests for account operations. It owns
// the typed-input boundary: every amount is coerced to int64 minor
// units exactly once here, and the service below never re-parses.
type AccountHandler struct {
	service    service.AccountService
	classifier *ErrorClassifier
	logger     *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc service.AccountService, classifier *ErrorClassifier, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		service:    svc,
		classifier: classifier,
		logger:     logger,
	}
}

func (h *AccountHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func (h *AccountHandler) respondWithError(w http.ResponseWriter, err error) {
	config := h.classifier.Classify(err)
	if config.Status == http.StatusInternalServerError {
		h.logger.Error("Unhandled service error", "error", err)
	}
	h.respondWithJSON(w, config.Status, map[string]string{
		"error":   config.Code,
		"message": config.Message,
	})
}

// accountIDParam parses the {accountID} URL parameter.
func accountIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "accountID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, util.ErrInvalidInput
	}
	return id, nil
}

// amountRequest is the shared request body for deposit and withdraw.
// The amount arrives as a JSON number and is decoded as a decimal so
// the single conversion to minor units can reject fractional or
// out-of-range values.
type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// minorUnits is the one string-to-integer coercion point for amounts.
func minorUnits(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, util.ErrInvalidInput
	}
	if !d.IsInteger() {
		return 0, util.ErrInvalidAmount
	}
	if !d.BigInt().IsInt64() {
		return 0, util.ErrInvalidAmount
	}
	return d.IntPart(), nil
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register handles account registration.
// POST /register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	account, err := h.service.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, account)
}

// CheckBalance handles the balance lookup request.
// GET /accounts/{accountID}/balance
func (h *AccountHandler) CheckBalance(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	account, err := h.service.CheckBalance(r.Context(), accountID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"id":      account.ID,
		"name":    account.Name,
		"email":   account.Email,
		"balance": account.Balance,
	})
}

// Deposit handles the deposit request.
// POST /accounts/{accountID}/deposit
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	amount, err := minorUnits(req.Amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	account, record, err := h.service.Deposit(r.Context(), accountID, amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	payload := map[string]interface{}{
		"id":      account.ID,
		"name":    account.Name,
		"email":   account.Email,
		"balance": account.Balance,
	}
	if record != nil {
		payload["transaction_id"] = record.ID
	}
	h.respondWithJSON(w, http.StatusOK, payload)
}

// Withdraw handles the withdraw request.
// POST /accounts/{accountID}/withdraw
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	amount, err := minorUnits(req.Amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	account, record, err := h.service.Withdraw(r.Context(), accountID, amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	payload := map[string]interface{}{
		"id":      account.ID,
		"name":    account.Name,
		"email":   account.Email,
		"balance": account.Balance,
	}
	if record != nil {
		payload["transaction_id"] = record.ID
	}
	h.respondWithJSON(w, http.StatusOK, payload)
}

// TransferRequest represents the request body for transfer.
type TransferRequest struct {
	ToAccountID int64           `json:"to_account_id"`
	Amount      decimal.Decimal `json:"amount"`
}

// Transfer handles the transfer request. The sending account comes from
// the URL, the receiving account from the body.
// POST /accounts/{accountID}/transfer
func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	fromAccountID, err := accountIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if req.ToAccountID <= 0 {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	amount, err := minorUnits(req.Amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	fromAccount, toAccount, err := h.service.Transfer(r.Context(), fromAccountID, req.ToAccountID, amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"from_balance": fromAccount.Balance,
		"to_balance":   toAccount.Balance,
	})
}

// GetTransactions handles the transaction history request.
// GET /accounts/{accountID}/transactions
func (h *AccountHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	records, totalCount, err := h.service.GetTransactions(r.Context(), accountID, limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.TransactionRecord]{
		Data:       records,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}
