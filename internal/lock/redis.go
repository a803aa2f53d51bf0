package lock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if we still own it.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Redis is a cross-instance Locker backed by SET NX with a TTL.
// A crashed holder's lock expires after ttl.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
	retry  time.Duration
	log    *slog.Logger
}

// NewRedis creates a Redis locker. ttl bounds both how long a lock lives and how long Lock waits
// when ctx has no deadline.
func NewRedis(client redis.UniversalClient, ttl time.Duration, log *slog.Logger) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Redis{client: client, ttl: ttl, retry: 25 * time.Millisecond, log: log}
}

func (r *Redis) Lock(ctx context.Context, key string) (Unlock, error) {
	k := fmt.Sprintf("lock:%s", key)
	value := uuid.NewString()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.ttl)
		defer cancel()
	}

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, k, value, r.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", k, err)
		}
		if ok {
			return r.unlocker(k, value), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrTimeout, k)
		case <-ticker.C:
		}
	}
}

func (r *Redis) unlocker(key, value string) Unlock {
	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, r.client, []string{key}, value).Err(); err != nil {
				r.log.Warn("lock_event", "event", "lock_release_failed", "key", key, "error", err.Error())
			}
		})
	}
}

var _ Locker = (*Redis)(nil)
