package ratelimit

import "time"

// Result describes the outcome of an Allow call.
type Result struct {
	// RetryAfter is how long until the oldest attempt leaves the window.
	// Zero when the attempt was allowed.
	RetryAfter time.Duration
	Limit      int
	Remaining  int
	Allowed    bool
}

// Limiter decides whether an attempt identified by key may proceed.
type Limiter interface {
	Allow(key string) Result
}

// SlidingWindow limits attempts per key over a sliding time window.
//
// Each key keeps the timestamps of its recent attempts. An attempt is refused
// when the key already has Limit attempts strictly younger than Window;
// otherwise its timestamp is recorded. Refused attempts are not recorded.
//
// State lives in process memory: it is lost on restart and not shared
// between instances.
type SlidingWindow struct {
	store  *store
	limit  int
	window time.Duration
}

// New creates a sliding-window limiter. Call Close to stop the janitor.
//
// Example:
//
//	l := ratelimit.New(
//	    ratelimit.WithLimit(5),
//	    ratelimit.WithWindow(10*time.Minute),
//	)
//	defer l.Close()
func New(opts ...Option) *SlidingWindow {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &SlidingWindow{
		store:  newStore(o.window, o.maxKeys, o.cleanupInterval, o.now),
		limit:  o.limit,
		window: o.window,
	}
}

// Allow checks the window for key and records the attempt when allowed.
func (l *SlidingWindow) Allow(key string) Result {
	res := Result{Limit: l.limit}

	l.store.update(key, func(w *window, now time.Time) {
		if len(w.hits) >= l.limit {
			res.RetryAfter = l.window - now.Sub(w.hits[0])
			return
		}
		w.hits = append(w.hits, now)
		res.Allowed = true
		res.Remaining = l.limit - len(w.hits)
	})

	return res
}

// Remaining returns how many attempts key may still make in the current window.
func (l *SlidingWindow) Remaining(key string) int {
	return max(l.limit-l.store.count(key), 0)
}

// Limit returns the attempts allowed per window.
func (l *SlidingWindow) Limit() int {
	return l.limit
}

// Window returns the window length.
func (l *SlidingWindow) Window() time.Duration {
	return l.window
}

// Keys returns the number of keys currently tracked.
func (l *SlidingWindow) Keys() int {
	return l.store.len()
}

// Close stops background cleanup. It is safe to call more than once.
func (l *SlidingWindow) Close() error {
	l.store.close()
	return nil
}

var _ Limiter = (*SlidingWindow)(nil)
