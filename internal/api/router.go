// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/andarpratama/nufaza-ewallet-test/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(accountHandler *handler.AccountHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Post("/register", accountHandler.Register)

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/{accountID}/balance", accountHandler.CheckBalance)
		r.Post("/{accountID}/deposit", accountHandler.Deposit)
		r.Post("/{accountID}/withdraw", accountHandler.Withdraw)
		r.Post("/{accountID}/transfer", accountHandler.Transfer)
		r.Get("/{accountID}/transactions", accountHandler.GetTransactions)
	})

	return r
}
