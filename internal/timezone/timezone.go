package timezone

import (
	"sync"
	"time"
)

// DefaultTimezone is the shop zone used when none is configured.
const DefaultTimezone = "America/Sao_Paulo"

var (
	mu    sync.RWMutex
	zones = map[string]*time.Location{}
)

// Load resolves an IANA zone name once and memoizes the result.
func Load(name string) (*time.Location, error) {
	mu.RLock()
	loc, ok := zones[name]
	mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	zones[name] = loc
	mu.Unlock()
	return loc, nil
}

// IsValid rejects the empty name, which time.LoadLocation maps to UTC.
func IsValid(name string) bool {
	if name == "" {
		return false
	}
	_, err := Load(name)
	return err == nil
}

// Location resolves name, falling back to the default zone and finally UTC
// when the zone database is unavailable.
func Location(name string) *time.Location {
	if IsValid(name) {
		loc, _ := Load(name)
		return loc
	}
	if loc, err := Load(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}
