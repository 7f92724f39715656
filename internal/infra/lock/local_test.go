package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
)

func TestLocalLockerMutualExclusion(t *testing.T) {
	l := NewLocalLocker(time.Second)

	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "slot:p1:2025-06-02")
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Fatalf("expected at most one holder, saw %d", maxInside)
	}
	if len(l.slots) != 0 {
		t.Fatalf("lock table not cleaned up: %d entries", len(l.slots))
	}
}

func TestLocalLockerTimeout(t *testing.T) {
	l := NewLocalLocker(20 * time.Millisecond)

	unlock, err := l.Lock(context.Background(), "k")
	if err != nil {
		t.Fatal(err)
	}
	defer unlock()

	if _, err := l.Lock(context.Background(), "k"); !errors.Is(err, booking.ErrLockTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}

	other, err := l.Lock(context.Background(), "other")
	if err != nil {
		t.Fatalf("independent keys must not block: %v", err)
	}
	other()
}

func TestLocalLockerUnlockIsIdempotent(t *testing.T) {
	l := NewLocalLocker(20 * time.Millisecond)

	unlock, err := l.Lock(context.Background(), "k")
	if err != nil {
		t.Fatal(err)
	}
	unlock()
	unlock()

	again, err := l.Lock(context.Background(), "k")
	if err != nil {
		t.Fatalf("relock after unlock: %v", err)
	}
	again()
}
