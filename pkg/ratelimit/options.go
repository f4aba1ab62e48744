package ratelimit

import "time"

// Defaults match the contact form policy: five attempts per ten minutes.
const (
	DefaultLimit           = 5
	DefaultWindow          = 600 * time.Second
	DefaultMaxKeys         = 10000
	DefaultCleanupInterval = time.Minute
)

// Option configures a SlidingWindow.
type Option func(*options)

type options struct {
	now             func() time.Time
	window          time.Duration
	cleanupInterval time.Duration
	limit           int
	maxKeys         int
}

func defaultOptions() *options {
	return &options{
		limit:           DefaultLimit,
		window:          DefaultWindow,
		maxKeys:         DefaultMaxKeys,
		cleanupInterval: DefaultCleanupInterval,
		now:             time.Now,
	}
}

// WithLimit sets the number of attempts allowed per window.
// Non-positive values are ignored.
func WithLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithWindow sets the sliding window length.
// Non-positive values are ignored.
func WithWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.window = d
		}
	}
}

// WithMaxKeys bounds the number of tracked keys. When the bound is reached
// the least recently active key is forgotten. Zero means unlimited.
func WithMaxKeys(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxKeys = n
		}
	}
}

// WithCleanupInterval sets how often idle keys are evicted.
// Zero disables the background janitor; idle keys are then only dropped
// when they are touched again or evicted by WithMaxKeys.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.cleanupInterval = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
