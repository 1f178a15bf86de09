// Package main implements import-words, a command that appends word pairs
// from an xlsx or CSV file to a user's drill queue.
//
// Usage:
//
//	import-words -email learner@example.com -file words.xlsx [-sheet Sheet1] [-no-header]
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/joho/godotenv"
	"github.com/phrazzld/lingo-api/internal/config"
	"github.com/phrazzld/lingo-api/internal/domain/drill"
	"github.com/phrazzld/lingo-api/internal/importer"
	"github.com/phrazzld/lingo-api/internal/lock"
	"github.com/phrazzld/lingo-api/internal/platform/logger"
	"github.com/phrazzld/lingo-api/internal/platform/postgres"
	"github.com/phrazzld/lingo-api/internal/platform/redis"
	"github.com/phrazzld/lingo-api/internal/service/word_review"
	"github.com/phrazzld/lingo-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

type options struct {
	email    string
	file     string
	sheet    string
	noHeader bool
}

func main() {
	var opts options
	flag.StringVar(&opts.email, "email", "", "email of the user whose language receives the words")
	flag.StringVar(&opts.file, "file", "", "path to an .xlsx or .csv file of original,translation rows")
	flag.StringVar(&opts.sheet, "sheet", "Sheet1", "worksheet to read from xlsx files")
	flag.BoolVar(&opts.noHeader, "no-header", false, "treat the first row as data")
	flag.Parse()

	if opts.email == "" || opts.file == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.Fatalf("import-words: %v", err)
	}
}

func run(opts options) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	readOpts := importer.DefaultOptions()
	readOpts.Sheet = opts.sheet
	readOpts.SkipHeader = !opts.noHeader
	result, err := importer.ReadFile(opts.file, readOpts)
	if err != nil {
		return err
	}
	for _, msg := range result.Skipped {
		l.Warn("skipping row", slog.String("file", opts.file), slog.String("reason", msg))
	}
	if len(result.Pairs) == 0 {
		return fmt.Errorf("no word pairs found in %s", opts.file)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	added, err := importWords(ctx, db, cfg, opts.email, result.Pairs, l)
	if err != nil {
		return err
	}

	l.Info("words imported",
		slog.String("email", opts.email),
		slog.Int("added", added),
		slog.Int("skipped", len(result.Skipped)))
	return nil
}

// importWords appends pairs to the language of the user with email.
func importWords(
	ctx context.Context,
	db *sql.DB,
	cfg *config.Config,
	email string,
	pairs []word_review.WordPair,
	l *slog.Logger,
) (int, error) {
	users := postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, l)
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return 0, fmt.Errorf("no user with email %s", email)
		}
		return 0, err
	}

	// The version check alone keeps the import safe against a running
	// server; the shared lock only avoids needless retries.
	var locker lock.Locker = lock.NewKeyedMutex()
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return 0, fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = rdb.Close() }()
		locker = redis.NewLocker(rdb, redis.Options{
			TTL: time.Duration(cfg.Redis.LockTTLSeconds) * time.Second,
		}, l)
	}

	languages := postgres.NewPostgresLanguageStore(db, l)
	words := postgres.NewPostgresWordStore(db, l)
	reviews := word_review.NewWordReviewService(
		word_review.NewSQLUnitOfWork(db, languages, words),
		locker,
		word_review.Config{
			Scheduler:    drill.Params{MaxStrength: cfg.Drill.MaxStrength},
			GuessRetries: cfg.Drill.GuessRetries,
		},
		l,
	)

	return reviews.AddWords(ctx, user.ID, pairs)
}
