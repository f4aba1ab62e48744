package middlewares

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/glconseil/vitrine/internal"
)

// AccessLogConfig configures the access log middleware.
type AccessLogConfig struct {
	SkipPrefixes []string // Paths not logged (health probes, static assets)
}

// AccessLogOption configures AccessLogConfig.
type AccessLogOption func(*AccessLogConfig)

// WithAccessLogSkip excludes requests whose path starts with one of the prefixes.
func WithAccessLogSkip(prefixes ...string) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.SkipPrefixes = append(cfg.SkipPrefixes, prefixes...)
	}
}

// AccessLog returns middleware that writes one log line per request with
// method, path, status, bytes, duration and client IP.
// 5xx responses log at error level, 4xx at warn, the rest at info.
//
// Register it after RequestID so the line carries request_id, and before
// Recover so panics show up with their final 500 status.
func AccessLog(opts ...AccessLogOption) internal.Middleware {
	cfg := &AccessLogConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			path := c.Request().URL.Path
			for _, p := range cfg.SkipPrefixes {
				if strings.HasPrefix(path, p) {
					return next(c)
				}
			}

			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil && !rw.Written() {
				status = statusFromError(err)
			}

			attrs := []slog.Attr{
				slog.String("method", c.Request().Method),
				slog.String("path", path),
				slog.Int("status", status),
				slog.Int64("bytes", rw.Size()),
				slog.Duration("duration", time.Since(start)),
				slog.String("ip", c.ClientIP()),
			}
			if ua := c.Header("User-Agent"); ua != "" {
				attrs = append(attrs, slog.String("user_agent", ua))
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}

			c.Logger().LogAttrs(c.Context(), levelForStatus(status), "request", attrs...)
			return err
		}
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// statusFromError maps an unhandled error to the status the error handler
// will most likely answer with.
func statusFromError(err error) int {
	if he := internal.AsHTTPError(err); he != nil {
		return he.Code
	}
	if te, ok := AsTimeoutError(err); ok {
		return te.StatusCode()
	}
	return http.StatusInternalServerError
}
