// Command vitrine serves the GL Conseil website.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/glconseil/vitrine/handlers"
	"github.com/glconseil/vitrine/internal"
	"github.com/glconseil/vitrine/internal/config"
	"github.com/glconseil/vitrine/middlewares"
	"github.com/glconseil/vitrine/pkg/contact"
	"github.com/glconseil/vitrine/pkg/content"
	"github.com/glconseil/vitrine/pkg/health"
	"github.com/glconseil/vitrine/pkg/logger"
	"github.com/glconseil/vitrine/pkg/mailer"
	"github.com/glconseil/vitrine/pkg/mailer/resend"
	"github.com/glconseil/vitrine/pkg/mailer/smtp"
	"github.com/glconseil/vitrine/pkg/ratelimit"
	"github.com/glconseil/vitrine/pkg/seo"
	"github.com/glconseil/vitrine/views"
	"github.com/glconseil/vitrine/web"
)

const hstsValue = "max-age=31536000; includeSubDomains"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	log, closeLog := logger.NewFromConfig(cfg.Log, middlewares.RequestIDExtractor())

	if err := run(cfg, log, closeLog); err != nil {
		log.Error("application error", "error", err)
		_ = closeLog(context.Background())
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger, closeLog func(context.Context) error) error {
	catalog, err := content.Load(web.Content(), content.Routes)
	if err != nil {
		return err
	}
	tmpl, err := views.New(web.Templates())
	if err != nil {
		return err
	}
	assetVersion := web.AssetVersion()

	site := &handlers.Site{
		Views:        tmpl,
		Catalog:      catalog,
		SEO:          seo.NewSite(cfg.Site.Name, cfg.Site.URL),
		AssetVersion: assetVersion,
	}
	https := strings.HasPrefix(cfg.Site.URL, "https://")

	// Contact form: per-address sliding window, global dispatch throttle,
	// then the configured mail transport.
	limiter := ratelimit.New(
		ratelimit.WithLimit(cfg.Contact.RateLimit),
		ratelimit.WithWindow(cfg.Contact.RateWindow),
		ratelimit.WithMaxKeys(cfg.Contact.RateMaxKeys),
	)
	log.Warn("contact rate limit is kept in memory",
		slog.String("scope", "single instance, reset on restart"),
		slog.Int("limit", limiter.Limit()),
		slog.Duration("window", limiter.Window()),
	)

	notifier, readiness := newNotifier(cfg, log)
	service := contact.NewService(limiter, notifier,
		contact.WithGlobalLimit(ratelimit.NewGlobal(cfg.Contact.GlobalPerMinute)),
		contact.WithLogger(log.With(slog.String("component", "contact"))),
	)

	httpMiddlewares := []func(http.Handler) http.Handler{}
	if cfg.Server.TrustProxy {
		httpMiddlewares = append(httpMiddlewares, middleware.RealIP)
	}
	httpMiddlewares = append(httpMiddlewares, middleware.Compress(5))

	secureOpts := []middlewares.SecureHeadersOption{}
	if https && !cfg.IsDevelopment() {
		secureOpts = append(secureOpts, middlewares.WithHSTS(hstsValue))
	}

	app := internal.New(
		internal.WithCustomLogger(log),
		internal.WithHTTPMiddleware(httpMiddlewares...),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(middlewares.WithAccessLogSkip("/health/", "/static/")),
			middlewares.Recover(),
			middlewares.SecureHeaders(secureOpts...),
			middlewares.CacheControl(),
			middlewares.Timeout(cfg.Server.RequestTimeout, middlewares.WithTimeoutSkip("/health/")),
		),
		internal.WithStaticFiles("/static/", web.Static(), "."),
		internal.WithErrorHandler(handlers.ErrorHandler(site)),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		internal.WithHealthChecks(readiness...),
		internal.WithHandlers(
			handlers.NewPages(site),
			handlers.NewSEO(site),
			handlers.NewContact(service),
			handlers.NewConsent(site, https),
		),
	)

	log.Info("site ready",
		slog.String("url", cfg.Site.URL),
		slog.String("env", cfg.Site.Env),
		slog.Int("pages", len(catalog.Pages())),
		slog.String("mail_transport", cfg.Transport()),
		slog.String("assets", assetVersion),
	)

	return app.Run(cfg.Server.Address,
		internal.Logger(log),
		internal.ShutdownTimeout(cfg.Server.ShutdownTimeout),
		internal.ShutdownHook(func(context.Context) error {
			log.Info("contact rate limit dropped", slog.Int("tracked_addresses", limiter.Keys()))
			return limiter.Close()
		}),
		internal.ShutdownHook(closeLog),
	)
}

// newNotifier picks the mail transport. Without one, submissions are
// accepted and logged but nothing is sent.
func newNotifier(cfg *config.Config, log *slog.Logger) (contact.Notifier, []internal.HealthOption) {
	var (
		sender    mailer.Sender
		readiness []internal.HealthOption
	)

	switch cfg.Transport() {
	case config.TransportSMTP:
		s := smtp.New(cfg.SMTP)
		sender = s
		readiness = append(readiness,
			internal.WithReadinessCheck("smtp", health.Ping(s)),
			internal.WithReadinessOptions(health.WithTimeout(5*time.Second), health.WithLogger(log)),
		)
	case config.TransportResend:
		sender = resend.New(cfg.Resend)
	default:
		log.Warn("no mail transport configured, contact submissions will not be emailed",
			slog.Bool("contact_to_set", cfg.Contact.To != ""),
		)
		return contact.NopNotifier{}, nil
	}

	m := mailer.New(sender, mailer.NewRenderer(web.Mail()), cfg.Mailer)
	return contact.NewMailNotifier(m, contact.MailConfig{
		To:       cfg.Contact.To,
		From:     cfg.ContactFrom(),
		SiteName: cfg.Site.Name,
	}), readiness
}
