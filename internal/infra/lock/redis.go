package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

// NewRedisLocker holds each lock for at most ttl and waits up to wait to
// acquire it.
func NewRedisLocker(client *redis.Client, ttl, wait time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		retry:  25 * time.Millisecond,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire slot lock: %w", err)
		}
		if ok {
			return func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, booking.ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

var _ booking.Locker = (*RedisLocker)(nil)
