// Package internal is the application core: a thin layer over chi that gives
// handlers a Context with error returns instead of raw http.Handler funcs.
//
// # Core Types
//
//   - App: Orchestrates HTTP routing, middleware, health endpoints and graceful shutdown
//   - Context: Request/response access and response helpers (JSON, XML, Render, Redirect)
//   - Router: Interface handlers use to declare routes
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns
//   - ErrorHandler: Turns a handler error into a response
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (h *Contact) submit(c internal.Context) error {
//	    res, err := h.service.Submit(c, sub)
//	    ...
//	}
//
// # Application Structure
//
//	app := internal.New(
//	    internal.WithHTTPMiddleware(middleware.RealIP),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(pages, seo, contactHandler),
//	    internal.WithStaticFiles("/static/", web.FS, "static"),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("smtp", check)),
//	    internal.WithErrorHandler(errorHandler),
//	)
//	err := app.Run(cfg.Server.Address, internal.Logger(log))
//
// # Error Handling
//
// Handlers return errors; the ErrorHandler renders them once. HTTPError carries
// the status, a user-facing message and an optional Retry-After. When the
// response is already written the error is only logged.
//
// # Request Lifecycle
//
// Every layer gets its own Context value but shares one ResponseWriter, so
// Written, Status and Size reflect the real response from any middleware.
//
// # Graceful Shutdown
//
// Run listens for SIGINT and SIGTERM, stops accepting connections, waits for
// in-flight requests up to the shutdown timeout, then runs shutdown hooks in
// registration order.
package internal
