// Package logger provides structured logging with context extraction,
// optional Sentry forwarding and optional rotating file output.
//
// The package extends log/slog. A LogHandlerDecorator injects request-scoped
// attributes (such as the request ID) on every log call, and NewFromConfig
// assembles the process logger from environment configuration:
//
//	cfg := logger.Config{Level: "debug", Format: "text"}
//	log, closeLog := logger.NewFromConfig(cfg, middlewares.RequestIDExtractor())
//	defer closeLog(context.Background())
//
// When Config.File.Path is set, records are written to stdout and to a file
// rotated by lumberjack. When Config.Sentry.DSN is set, warnings are stored in
// Sentry as logs and errors become Sentry issues. Both integrations degrade to
// stdout-only logging when unconfigured.
//
// NewNope returns a logger that discards everything; it is the default for
// components constructed without a logger.
package logger
