package booking

import (
	"context"
	"errors"
)

var ErrLockTimeout = errors.New("slot lock not acquired in time")

// Locker serializes booking writes for one provider and date.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

func SlotKey(providerID, date string) string {
	return "slot:" + providerID + ":" + date
}
