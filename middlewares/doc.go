// Package middlewares provides the HTTP middleware stack of the site.
//
// # Request ID
//
// RequestID assigns each request a UUIDv7, or reuses X-Request-ID /
// X-Correlation-ID from a trusted proxy. Pair it with RequestIDExtractor in
// the logger factory so every log line carries request_id:
//
//	log, closeLog := logger.NewFromConfig(cfg.Log, middlewares.RequestIDExtractor())
//
// # Access log
//
// AccessLog writes one line per request (method, path, status, bytes,
// duration, client IP). It reads the shared response writer, so the status is
// the one actually sent.
//
// # Recover and Timeout
//
// Recover converts panics into *PanicError. Timeout bounds a request and
// returns *TimeoutError. Both are rendered by the application error handler:
//
//	internal.WithErrorHandler(func(c internal.Context, err error) error {
//	    if middlewares.IsTimeoutError(err) {
//	        return c.Error(http.StatusServiceUnavailable, "Service indisponible")
//	    }
//	    return c.Error(http.StatusInternalServerError, "Erreur interne")
//	})
//
// # Headers
//
// SecureHeaders sets Content-Security-Policy (built with crewjam/csp),
// X-Content-Type-Options, X-Frame-Options, Referrer-Policy and
// Permissions-Policy. CacheControl picks a Cache-Control value per path class:
// static assets are immutable for a year, pages five minutes, sitemap and
// robots one hour, the API never.
//
// # Order
//
//	internal.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.AccessLog(middlewares.WithAccessLogSkip("/health/")),
//	    middlewares.Recover(),
//	    middlewares.SecureHeaders(),
//	    middlewares.CacheControl(),
//	    middlewares.Timeout(30*time.Second, middlewares.WithTimeoutSkip("/health/")),
//	)
package middlewares
