package timezone

import (
	"sync"
	"time"
)

// DefaultTimezone is used for users registered without a zone and for
// stored zones that no longer load.
var DefaultTimezone = "UTC"

var cache sync.Map // name -> *time.Location

// SetDefault changes the fallback zone. Invalid names are ignored.
func SetDefault(tz string) {
	if IsValid(tz) {
		DefaultTimezone = tz
	}
}

func IsValid(tz string) bool {
	_, ok := load(tz)
	return ok
}

// Location never fails: unknown zones fall back to DefaultTimezone, then UTC.
func Location(tz string) *time.Location {
	if loc, ok := load(tz); ok {
		return loc
	}
	if loc, ok := load(DefaultTimezone); ok {
		return loc
	}
	return time.UTC
}

func load(tz string) (*time.Location, bool) {
	if tz == "" {
		return nil, false
	}
	if loc, ok := cache.Load(tz); ok {
		return loc.(*time.Location), true
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, false
	}
	cache.Store(tz, loc)
	return loc, true
}
