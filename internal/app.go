// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "github.com/andarpratama/nufaza-ewallet-test/internal/api"
	"github.com/andarpratama/nufaza-ewallet-test/internal/api/handler"
	"github.com/andarpratama/nufaza-ewallet-test/internal/config"
	"github.com/andarpratama/nufaza-ewallet-test/internal/repository"
	"github.com/andarpratama/nufaza-ewallet-test/internal/repository/postgres"
	"github.com/andarpratama/nufaza-ewallet-test/internal/service"
	"github.com/andarpratama/nufaza-ewallet-test/internal/util"
	"github.com/andarpratama/nufaza-ewallet-test/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	AccountRepository     repository.AccountRepository
	TransactionRepository repository.TransactionRepository

	// Services
	AccountService service.AccountService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	util.InitLogger()
	app.Logger = util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.AccountRepository = postgres.NewAccountRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// The concrete db.BeginTx/CommitTx/RollbackTx functions are injected
	// so tests can substitute transaction control.
	app.AccountService = service.NewAccountService(
		app.DB, // DBTxBeginner
		app.DB, // DBExecutor for non-transactional reads
		app.AccountRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// The error classifier is built once here and handed to the handler
	// by reference; it is never mutated at runtime.
	classifier := handler.NewErrorClassifier()
	accountHandler := handler.NewAccountHandler(app.AccountService, classifier, app.Logger)
	app.HTTPHandler = router.NewRouter(accountHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
