// Package ratelimit throttles repeated attempts.
//
// SlidingWindow keeps, per key, the timestamps of recent attempts in a
// mutex-guarded table bounded by LRU eviction; a janitor goroutine drops keys
// that have been idle for a full window. Global wraps golang.org/x/time/rate
// for a single process-wide budget.
//
//	limiter := ratelimit.New(ratelimit.WithLimit(5), ratelimit.WithWindow(10*time.Minute))
//	defer limiter.Close()
//
//	if res := limiter.Allow(clientIP); !res.Allowed {
//	    w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
//	}
package ratelimit
