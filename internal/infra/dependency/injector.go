// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/itissulav/Kharcha/config"
	"github.com/itissulav/Kharcha/internal/application/adapter"
	"github.com/itissulav/Kharcha/internal/application/usecase/account"
	"github.com/itissulav/Kharcha/internal/application/usecase/category"
	"github.com/itissulav/Kharcha/internal/application/usecase/dashboard"
	"github.com/itissulav/Kharcha/internal/application/usecase/limit"
	"github.com/itissulav/Kharcha/internal/application/usecase/recurrence"
	"github.com/itissulav/Kharcha/internal/application/usecase/settings"
	"github.com/itissulav/Kharcha/internal/application/usecase/transaction"
	domainerror "github.com/itissulav/Kharcha/internal/domain/error"
	"github.com/itissulav/Kharcha/internal/infra/server/router"
	"github.com/itissulav/Kharcha/internal/integration/adapters"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/controller"
	"github.com/itissulav/Kharcha/internal/integration/entrypoint/middleware"
	"github.com/itissulav/Kharcha/internal/integration/events"
	"github.com/itissulav/Kharcha/internal/integration/metrics"
	"github.com/itissulav/Kharcha/internal/integration/persistence"
	"github.com/itissulav/Kharcha/internal/integration/worker"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
	Worker *worker.RecurrenceWorker

	CatchUp   *recurrence.RunCatchUpUseCase
	Backfills *recurrence.RetryBackfillsUseCase
	Summary   *dashboard.GetMonthSummaryUseCase
	Settings  *settings.SettingsUseCase
	Metrics   *metrics.Prometheus

	closers []func() error
}

// Options overrides infrastructure normally built from configuration.
type Options struct {
	Clock       adapter.Clock
	RedisClient *redis.Client
	Publisher   adapter.EventPublisher
}

// NewInjector creates a new dependency injector with all dependencies wired.
// Redis and AMQP are connected when configured. Without them the run lock is
// held in memory and events are logged.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	inj := &Injector{Config: cfg, DB: db}

	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	redisClient := opts.RedisClient
	if redisClient == nil && cfg.Redis.Enabled {
		client, err := NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		redisClient = client
		inj.closers = append(inj.closers, client.Close)
	}

	var runLock adapter.RunLock
	if redisClient != nil {
		runLock = adapters.NewRedisRunLock(redisClient)
	} else {
		runLock = adapters.NewInMemoryRunLock()
	}

	publisher := opts.Publisher
	if publisher == nil {
		publisher = inj.newPublisher(&cfg.Events)
	}

	var ledgerMetrics adapter.LedgerMetrics
	if cfg.Metrics.Enabled {
		inj.Metrics = metrics.NewPrometheus()
		ledgerMetrics = inj.Metrics
	}

	defaults := cfg.Budget.BudgetDefaults()

	// Create repositories
	accountRepo := persistence.NewAccountRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	aggregationRepo := persistence.NewAggregationRepository(db)
	settingsRepo := persistence.NewSettingsRepository(db, defaults)
	backfillRepo := persistence.NewBackfillRepository(db)
	maintenance := persistence.NewLedgerMaintenance(db, defaults)

	// Create account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo)
	getAccountsUseCase := account.NewGetAccountsUseCase(accountRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, aggregationRepo, clock)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create transaction use cases
	postTransactionUseCase := transaction.NewPostTransactionUseCase(transactionRepo, clock, publisher, ledgerMetrics)
	editTransactionUseCase := transaction.NewEditTransactionUseCase(transactionRepo, clock, publisher)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, clock, publisher)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, clock)

	evaluateLimitUseCase := limit.NewEvaluateLimitUseCase(categoryRepo, aggregationRepo, settingsRepo, clock)

	// Create recurrence use cases
	inj.CatchUp = recurrence.NewRunCatchUpUseCase(
		transactionRepo,
		backfillRepo,
		postTransactionUseCase,
		runLock,
		clock,
		publisher,
		ledgerMetrics,
		recurrence.CatchUpConfig{
			LockTTL:             cfg.Recurrence.LockTTL,
			BackfillMaxAttempts: cfg.Recurrence.BackfillMaxAttempts,
		},
	)
	inj.Backfills = recurrence.NewRetryBackfillsUseCase(
		transactionRepo,
		backfillRepo,
		postTransactionUseCase,
		runLock,
		clock,
		ledgerMetrics,
		cfg.Recurrence.LockTTL,
	)
	inj.Worker = worker.NewRecurrenceWorker(inj.CatchUp, inj.Backfills, worker.RecurrenceWorkerConfig{
		Interval:  cfg.Recurrence.Interval,
		BatchSize: cfg.Recurrence.BackfillBatchSize,
	})

	// Create dashboard use cases
	inj.Summary = dashboard.NewGetMonthSummaryUseCase(aggregationRepo, accountRepo, settingsRepo, clock)
	statsUseCases := controller.StatsUseCases{
		MonthTotals:   dashboard.NewGetMonthTotalsUseCase(aggregationRepo, clock),
		CategorySpend: dashboard.NewGetCategorySpendUseCase(categoryRepo, aggregationRepo, clock),
		Summary:       inj.Summary,
		Breakdown:     dashboard.NewGetCategoryBreakdownUseCase(aggregationRepo, clock),
		Trailing:      dashboard.NewGetTrailingTotalsUseCase(aggregationRepo, categoryRepo, clock),
		Series:        dashboard.NewGetSeriesUseCase(aggregationRepo, clock),
		TopCategories: dashboard.NewGetTopCategoriesUseCase(aggregationRepo, clock),
	}

	inj.Settings = settings.NewSettingsUseCase(settingsRepo, maintenance, clock)

	// Create controllers
	healthChecks := map[string]controller.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(healthChecks),
		Account: controller.NewAccountController(
			createAccountUseCase,
			updateAccountUseCase,
			deleteAccountUseCase,
			getAccountsUseCase,
			listTransactionsUseCase,
		),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			updateCategoryUseCase,
			deleteCategoryUseCase,
		),
		Transaction: controller.NewTransactionController(
			postTransactionUseCase,
			editTransactionUseCase,
			deleteTransactionUseCase,
			listTransactionsUseCase,
			evaluateLimitUseCase,
		),
		Limit:      controller.NewLimitController(evaluateLimitUseCase),
		Recurrence: controller.NewRecurrenceController(inj.CatchUp, inj.Backfills, cfg.Recurrence.BackfillBatchSize),
		Stats:      controller.NewStatsController(statsUseCases),
		Settings:   controller.NewSettingsController(inj.Settings),
	}

	var runCounter middleware.WindowCounter = middleware.NewMemoryCounter(clock)
	if redisClient != nil {
		runCounter = middleware.NewRedisCounter(redisClient)
	}
	runLimit := int64(6)
	if cfg.Server.Environment == "test" {
		runLimit = 1000
	}
	recurrenceLimiter := middleware.NewRateLimiter(runCounter, middleware.RateLimitConfig{
		Scope:  "recurrence-run",
		Limit:  runLimit,
		Window: time.Minute,
		Code:   string(domainerror.ErrCodeRunRateLimited),
	})

	var metricsHandler http.Handler
	if inj.Metrics != nil {
		metricsHandler = inj.Metrics.Handler()
	}
	inj.Router = router.NewRouter(controllers, recurrenceLimiter, metricsHandler, cfg.Server.CORSAllowOrigins)

	return inj, nil
}

// newPublisher connects to AMQP when configured and falls back to logging events.
func (inj *Injector) newPublisher(cfg *config.EventsConfig) adapter.EventPublisher {
	if cfg.AMQPURL == "" {
		return events.NewLogPublisher(nil)
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, cfg.RoutingKey)
	if err != nil {
		slog.Warn("AMQP unavailable, logging ledger events instead", "error", err)
		return events.NewLogPublisher(nil)
	}
	inj.closers = append(inj.closers, publisher.Close)
	return publisher
}

// NewRedisClient connects to the configured Redis server.
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Close releases connections opened by the injector.
func (inj *Injector) Close() {
	for i := len(inj.closers) - 1; i >= 0; i-- {
		if err := inj.closers[i](); err != nil {
			slog.Warn("Failed to close dependency", "error", err)
		}
	}
}
