package middlewares

import (
	"errors"
	"net/http"
	"runtime"

	"github.com/glconseil/vitrine/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Omit the stack trace from logs and PanicError
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisablePrintStack disables stack capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that turns a panic in a page or API handler into
// a *PanicError, so the visitor gets the regular 500 page instead of a
// dropped connection.
//
// http.ErrAbortHandler is re-panicked: net/http uses it to abort a response
// on purpose and suppresses its stack trace.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if isAbort(r) {
					panic(r)
				}

				stackSize := cfg.StackSize
				if cfg.DisablePrintStack {
					stackSize = 0
				}
				err = recovered(c, r, stackSize)
			}()

			return next(c)
		}
	}
}

// recovered logs a recovered panic and wraps it. The stack is captured only
// when stackSize is positive and must be called from the deferred function
// so that it includes the panicking frames.
func recovered(c internal.Context, r any, stackSize int) *PanicError {
	pe := &PanicError{Value: r}
	attrs := []any{
		"panic", r,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
	}
	if stackSize > 0 {
		buf := make([]byte, stackSize)
		pe.Stack = buf[:runtime.Stack(buf, false)]
		attrs = append(attrs, "stack", string(pe.Stack))
	}

	c.LogError("panic recovered", attrs...)
	return pe
}

// isAbort reports whether r is the sentinel net/http uses to abort a response.
func isAbort(r any) bool {
	e, ok := r.(error)
	return ok && errors.Is(e, http.ErrAbortHandler)
}
