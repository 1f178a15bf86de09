// Package redis provides a Redis-backed lock.Locker so several server
// instances can serialize guesses on the same language.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/lock"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by someone else is left alone.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Options configures a Locker.
type Options struct {
	// TTL bounds how long a lock survives a crashed holder.
	TTL time.Duration
	// Wait bounds how long Acquire polls before giving up.
	Wait time.Duration
	// Poll is the delay between acquisition attempts.
	Poll time.Duration
	// Prefix is prepended to every key.
	Prefix string
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = 10 * time.Second
	}
	if o.Wait <= 0 {
		o.Wait = o.TTL
	}
	if o.Poll <= 0 {
		o.Poll = 25 * time.Millisecond
	}
	if o.Prefix == "" {
		o.Prefix = "lingo:lock:"
	}
	return o
}

// Locker implements lock.Locker with SET NX PX and a token-checked release.
type Locker struct {
	rdb    *goredis.Client
	opts   Options
	logger *slog.Logger
}

var _ lock.Locker = (*Locker)(nil)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewLocker creates a Locker on an existing client.
func NewLocker(rdb *goredis.Client, opts Options, logger *slog.Logger) *Locker {
	if rdb == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Locker{
		rdb:    rdb,
		opts:   opts.withDefaults(),
		logger: logger.With(slog.String("component", "redis_lock")),
	}
}

// Acquire polls until the key is free, Options.Wait elapses or ctx is done.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := l.opts.Prefix + key
	token := uuid.NewString()

	backoff := retry.WithMaxDuration(l.opts.Wait, retry.NewConstant(l.opts.Poll))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		ok, err := l.rdb.SetNX(ctx, redisKey, token, l.opts.TTL).Result()
		if err != nil {
			return err
		}
		if !ok {
			return retry.RetryableError(lock.ErrNotAcquired)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, lock.ErrNotAcquired) {
			err = errors.Join(lock.ErrNotAcquired, err)
		}
		l.logger.Warn("failed to acquire lock",
			slog.String("key", redisKey),
			slog.String("error", err.Error()))
		return nil, err
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true

		// The caller's context may already be cancelled; release regardless.
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(relCtx, l.rdb, []string{redisKey}, token).Err(); err != nil {
			l.logger.Error("failed to release lock",
				slog.String("key", redisKey),
				slog.String("error", err.Error()))
		}
	}, nil
}
