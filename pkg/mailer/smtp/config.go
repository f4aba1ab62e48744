package smtp

import "time"

// Config holds SMTP relay configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host     string        `env:"SMTP_HOST"`
	User     string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASSWORD"`
	HeloName string        `env:"SMTP_HELO_NAME" envDefault:"localhost"`
	Port     int           `env:"SMTP_PORT" envDefault:"587" validate:"min=1,max=65535"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
	UseTLS   bool          `env:"SMTP_USE_TLS" envDefault:"true"`
}

// Configured reports whether host and credentials are all set.
func (c Config) Configured() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

// implicitTLS reports whether the connection is TLS from the first byte.
func (c Config) implicitTLS() bool {
	return c.UseTLS && c.Port == 465
}
