package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lingo-api/internal/audit"
	"github.com/phrazzld/lingo-api/internal/config"
	"github.com/phrazzld/lingo-api/internal/domain/drill"
	"github.com/phrazzld/lingo-api/internal/lock"
	"github.com/phrazzld/lingo-api/internal/platform/postgres"
	"github.com/phrazzld/lingo-api/internal/platform/redis"
	"github.com/phrazzld/lingo-api/internal/service"
	"github.com/phrazzld/lingo-api/internal/service/auth"
	"github.com/phrazzld/lingo-api/internal/service/word_review"
	"github.com/phrazzld/lingo-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	languageStore store.LanguageStore
	wordStore     store.WordStore

	jwtService    auth.JWTService
	userService   service.UserService
	reviewService word_review.WordReviewService

	locker         lock.Locker
	redisClient    *goredis.Client
	auditScheduler *audit.Scheduler
}

// newApplication wires stores, services and background jobs.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	app.languageStore = postgres.NewPostgresLanguageStore(db, logger)
	app.wordStore = postgres.NewPostgresWordStore(db, logger)

	if err := app.setupLocker(ctx); err != nil {
		return nil, err
	}

	app.userService = service.NewUserService(
		app.userStore,
		app.languageStore,
		auth.NewBcryptVerifier(),
		db,
		logger,
	)

	app.reviewService = word_review.NewWordReviewService(
		word_review.NewSQLUnitOfWork(db, app.languageStore, app.wordStore),
		app.locker,
		word_review.Config{
			Scheduler:    drill.Params{MaxStrength: cfg.Drill.MaxStrength},
			GuessRetries: cfg.Drill.GuessRetries,
		},
		logger,
	)

	if cfg.Audit.Enabled {
		auditor := audit.NewAuditor(app.languageStore, app.wordStore, cfg.Audit.Concurrency, logger)
		app.auditScheduler = audit.NewScheduler(
			auditor,
			time.Duration(cfg.Audit.IntervalMinutes)*time.Minute,
			logger,
		)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupLocker uses Redis when an address is configured and an in-process
// keyed mutex otherwise.
func (app *application) setupLocker(ctx context.Context) error {
	if app.config.Redis.Addr == "" {
		app.locker = lock.NewKeyedMutex()
		app.logger.Warn("redis not configured; guesses are serialized in-process only")
		return nil
	}

	rdb, err := redis.NewClient(ctx, app.config.Redis.Addr, app.config.Redis.Password, app.config.Redis.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redisClient = rdb
	app.locker = redis.NewLocker(rdb, redis.Options{
		TTL: time.Duration(app.config.Redis.LockTTLSeconds) * time.Second,
	}, app.logger)
	app.logger.Info("Redis guess lock enabled", slog.String("addr", app.config.Redis.Addr))
	return nil
}

// Run starts background jobs and serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if app.auditScheduler != nil {
		if err := app.auditScheduler.Start(ctx); err != nil {
			return err
		}
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.auditScheduler != nil {
		app.auditScheduler.Stop()
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
