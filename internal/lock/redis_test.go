package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedis_LockUnlock(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedis(client, time.Second, nil)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "subscriber:a@b.com")
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:subscriber:a@b.com"))

	unlock()
	assert.False(t, mr.Exists("lock:subscriber:a@b.com"))
}

func TestRedis_ContendedLockTimesOut(t *testing.T) {
	_, client := newTestRedis(t)
	l := NewRedis(client, time.Second, nil)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestRedis_WaiterAcquiresAfterRelease(t *testing.T) {
	_, client := newTestRedis(t)
	l := NewRedis(client, time.Second, nil)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	go func() {
		time.Sleep(30 * time.Millisecond)
		unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlock2, err := l.Lock(ctx, "k")
	require.NoError(t, err)
	unlock2()
}

func TestRedis_ReleaseDoesNotStealForeignLock(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedis(client, time.Second, nil)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	// Simulate expiry and takeover by another instance.
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("lock:k", "someone-else"))

	unlock()
	got, err := mr.Get("lock:k")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedis_BackendError(t *testing.T) {
	mr, client := newTestRedis(t)
	l := NewRedis(client, time.Second, nil)
	mr.SetError("READONLY")

	_, err := l.Lock(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeout)
}
