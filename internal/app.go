// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	router "emocredit/internal/api"
	"emocredit/internal/api/handler"
	"emocredit/internal/config"
	"emocredit/internal/credit"
	"emocredit/internal/migrations"
	"emocredit/internal/repository"
	"emocredit/internal/repository/postgres"
	"emocredit/internal/service"
	"emocredit/internal/util"
	"emocredit/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	EmotionRepository     repository.EmotionRepository
	CreditLimitRepository repository.CreditLimitRepository

	// Services
	EmotionService service.EmotionService

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

	if err := migrations.Apply(app.DB.DB); err != nil {
		return fmt.Errorf("failed to run schema migrations: %w", err)
	}
	app.Logger.Info("Schema migrations applied.")

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.EmotionRepository = postgres.NewEmotionRepository(app.DB)
	app.CreditLimitRepository = postgres.NewCreditLimitRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// Process-wide random source for credit limit computation. Injected
	// rather than ambient so tests can substitute a deterministic one.
	calculator := credit.NewCalculator(rand.New(rand.NewSource(time.Now().UnixNano())))

	app.EmotionService = service.NewEmotionService(
		app.DB, // DBTxBeginner
		app.DB, // DBExecutor for non-transactional reads
		app.UserRepository,
		app.EmotionRepository,
		app.CreditLimitRepository,
		calculator,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	emotionHandler := handler.NewEmotionHandler(app.EmotionService, app.Logger)
	app.HTTPHandler = router.NewRouter(emotionHandler, app.Logger)
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
