// Package config loads application configuration from the environment.
//
// Values come from process environment variables, optionally seeded from
// .env files. Every field has a default except the mail transport secrets;
// a missing relay configuration disables sending rather than failing startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	playground "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/glconseil/vitrine/pkg/logger"
	"github.com/glconseil/vitrine/pkg/mailer"
	"github.com/glconseil/vitrine/pkg/mailer/resend"
	"github.com/glconseil/vitrine/pkg/mailer/smtp"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Transports.
const (
	TransportSMTP   = "smtp"
	TransportResend = "resend"
	TransportNone   = "none"
)

// Config is the root configuration.
type Config struct {
	Server  Server
	Site    Site
	Contact Contact
	Log     logger.Config
	Mailer  mailer.Config
	Resend  resend.Config
	SMTP    smtp.Config
}

// Server configures the HTTP listener.
type Server struct {
	Address         string        `env:"ADDRESS" envDefault:":8080" validate:"required"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	// TrustProxy enables X-Forwarded-For / X-Real-IP for the client address.
	// Only enable behind a reverse proxy that overwrites these headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

// Site describes the public site.
type Site struct {
	URL  string `env:"SITE_URL" envDefault:"https://www.gl-conseil.fr" validate:"required,url"`
	Name string `env:"SITE_NAME" envDefault:"GL Conseil" validate:"required"`
	Env  string `env:"ENV" envDefault:"production" validate:"oneof=development production test"`
}

// Contact configures the contact form.
type Contact struct {
	To              string        `env:"CONTACT_TO" validate:"omitempty,email"`
	From            string        `env:"CONTACT_FROM"`
	RateLimit       int           `env:"CONTACT_RATE_LIMIT" envDefault:"5" validate:"min=1"`
	RateWindow      time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"600s" validate:"gt=0"`
	RateMaxKeys     int           `env:"CONTACT_RATE_MAX_KEYS" envDefault:"10000" validate:"min=1"`
	GlobalPerMinute int           `env:"CONTACT_GLOBAL_PER_MINUTE" envDefault:"20" validate:"min=0"`
}

// Load reads .env files (missing files are skipped), then parses the environment.
// Variables already set in the process win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return parse(nil)
}

// FromMap parses configuration from the given variables only.
func FromMap(environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return parse(environ)
}

func parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	cfg.Site.URL = strings.TrimRight(strings.TrimSpace(cfg.Site.URL), "/")
	cfg.Contact.To = strings.TrimSpace(cfg.Contact.To)
	cfg.Contact.From = strings.TrimSpace(cfg.Contact.From)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	err := playground.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("config: invalid values: %s", strings.Join(msgs, "; "))
}

// IsDevelopment reports whether ENV is development.
func (c *Config) IsDevelopment() bool {
	return c.Site.Env == EnvDevelopment
}

// ContactFrom returns the sender address for contact notifications.
// CONTACT_FROM wins; otherwise the transport's own identity is used.
func (c *Config) ContactFrom() string {
	if c.Contact.From != "" {
		return c.Contact.From
	}
	switch c.Transport() {
	case TransportSMTP:
		return c.SMTP.User
	case TransportResend:
		return mailer.Recipient(c.Resend.SenderName, c.Resend.SenderEmail)
	}
	return ""
}

// Transport selects the mail transport: SMTP when the relay is fully
// configured, then Resend, otherwise none.
func (c *Config) Transport() string {
	if c.Contact.To == "" {
		return TransportNone
	}
	if c.SMTP.Configured() {
		return TransportSMTP
	}
	if c.Resend.Configured() && (c.Contact.From != "" || c.Resend.SenderEmail != "") {
		return TransportResend
	}
	return TransportNone
}
