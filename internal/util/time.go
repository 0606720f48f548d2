package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider formats timeline timestamps in a configured timezone
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	mu                 sync.Mutex
)

// InitializeTimeProvider initializes the global time provider with the specified timezone
func InitializeTimeProvider(timezone string) error {
	mu.Lock()
	defer mu.Unlock()

	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}

	// Only set the global provider if successful
	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider, defaulting to Local
func GetTimeProvider() *TimeProvider {
	mu.Lock()
	defer mu.Unlock()

	if globalTimeProvider == nil {
		globalTimeProvider = &TimeProvider{location: time.Local}
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Europe/London", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// Location returns the configured timezone
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Format formats t according to layout in the configured timezone
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location).Format(layout)
}

// FormatMillis formats a millisecond epoch timestamp
func (tp *TimeProvider) FormatMillis(ms int64, layout string) string {
	return tp.Format(time.UnixMilli(ms), layout)
}
