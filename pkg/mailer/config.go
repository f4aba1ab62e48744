package mailer

// Config is parsed from the environment by internal/config.
type Config struct {
	// FallbackSubject is used when a template has no Subject front matter.
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Nouveau message"`
	// DefaultLayout wraps the markdown body when SendParams names none.
	DefaultLayout string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
}
