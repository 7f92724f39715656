package lock

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/smart-hire/internal/domain/booking"
)

// LocalLocker is the single-process fallback used when no Redis is
// configured.
type LocalLocker struct {
	wait time.Duration

	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker(wait time.Duration) *LocalLocker {
	return &LocalLocker{
		wait:  wait,
		slots: make(map[string]*slot),
	}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	s := l.acquireRef(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.releaseRef(key)
			})
		}, nil
	case <-timer.C:
		l.releaseRef(key)
		return nil, booking.ErrLockTimeout
	case <-ctx.Done():
		l.releaseRef(key)
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) acquireRef(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) releaseRef(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := l.slots[key]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

var _ booking.Locker = (*LocalLocker)(nil)
