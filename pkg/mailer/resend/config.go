package resend

// Config configures the Resend API transport. The sender fields are used
// when CONTACT_FROM is empty.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME"`
}

// Configured reports whether an API key is set.
func (c Config) Configured() bool {
	return c.APIKey != ""
}
