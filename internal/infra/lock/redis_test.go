package lock

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
)

// Runs against a real server only when REDIS_TEST_URL is set.
func TestRedisLocker(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatal(err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	key := "test:" + t.Name()
	client.Del(ctx, key)

	l := NewRedisLocker(client, time.Second, 50*time.Millisecond)

	unlock, err := l.Lock(ctx, key)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := l.Lock(ctx, key); !errors.Is(err, booking.ErrLockTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}

	unlock()

	again, err := l.Lock(ctx, key)
	if err != nil {
		t.Fatalf("relock: %v", err)
	}
	again()
}
