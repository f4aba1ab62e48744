package middlewares

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/glconseil/vitrine/internal"
)

// DefaultTimeout bounds a single page render or contact submission.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	Timeout      time.Duration
	SkipPrefixes []string // Path prefixes the deadline is not applied to
}

// TimeoutOption configures TimeoutConfig.
type TimeoutOption func(*TimeoutConfig)

// WithTimeoutSkip excludes requests whose path starts with one of the prefixes.
// Health probes use it so a slow SMTP check reports its own error.
func WithTimeoutSkip(prefixes ...string) TimeoutOption {
	return func(cfg *TimeoutConfig) {
		cfg.SkipPrefixes = append(cfg.SkipPrefixes, prefixes...)
	}
}

// Timeout returns middleware that enforces a request deadline.
// If the handler does not finish in time a *TimeoutError is returned to the
// ErrorHandler.
//
// The handler runs on its own goroutine and keeps running after the
// deadline. Handlers doing blocking work (mail dispatch) must watch
// GetTimeoutContext(c).Done(). A panic on that goroutine is logged and
// returned as a *PanicError; http.ErrAbortHandler is re-panicked on the
// request goroutine where net/http expects it.
func Timeout(timeout time.Duration, opts ...TimeoutOption) internal.Middleware {
	cfg := &TimeoutConfig{
		Timeout: timeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			path := c.Request().URL.Path
			for _, p := range cfg.SkipPrefixes {
				if strings.HasPrefix(path, p) {
					return next(c)
				}
			}

			ctx, cancel := context.WithTimeout(c.Context(), cfg.Timeout)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			aborted := make(chan any, 1)
			go func() {
				defer func() {
					r := recover()
					if r == nil {
						return
					}
					if isAbort(r) {
						aborted <- r
						return
					}
					done <- recovered(c, r, DefaultStackSize)
				}()
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case r := <-aborted:
				panic(r)
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", cfg.Timeout.String(), "path", path)
					return &TimeoutError{Duration: cfg.Timeout}
				}
				return ctx.Err()
			}
		}
	}
}

// timeoutContextKey is used to store the timeout context.
type timeoutContextKey struct{}

// GetTimeoutContext retrieves the timeout context if available.
// Falls back to the request context.
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c.Context()
}
