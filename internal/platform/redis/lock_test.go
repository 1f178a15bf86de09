package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()

	o := Options{}.withDefaults()
	assert.Equal(t, 10*time.Second, o.TTL)
	assert.Equal(t, o.TTL, o.Wait)
	assert.Equal(t, 25*time.Millisecond, o.Poll)
	assert.Equal(t, "lingo:lock:", o.Prefix)

	o = Options{TTL: time.Second, Wait: 3 * time.Second, Poll: time.Millisecond, Prefix: "x:"}.withDefaults()
	assert.Equal(t, time.Second, o.TTL)
	assert.Equal(t, 3*time.Second, o.Wait)
	assert.Equal(t, time.Millisecond, o.Poll)
	assert.Equal(t, "x:", o.Prefix)
}

func TestNewLocker_PanicsOnNilClient(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewLocker(nil, Options{}, nil) })
}

// TestLocker_AgainstRedis needs a running server at REDIS_ADDR.
func TestLocker_AgainstRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set - skipping redis lock test")
	}

	ctx := context.Background()
	rdb, err := NewClient(ctx, addr, "", 0)
	require.NoError(t, err)
	defer func() { _ = rdb.Close() }()

	locker := NewLocker(rdb, Options{TTL: 2 * time.Second, Wait: 100 * time.Millisecond}, nil)
	key := "test-" + uuid.NewString()

	release, err := locker.Acquire(ctx, key)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, key)
	assert.ErrorIs(t, err, lock.ErrNotAcquired)

	release()
	release()

	release, err = locker.Acquire(ctx, key)
	require.NoError(t, err)
	release()
}
