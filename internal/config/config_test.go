package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glconseil/vitrine/internal/config"
)

func TestFromMap_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromMap(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.False(t, cfg.Server.TrustProxy)
	assert.Equal(t, "https://www.gl-conseil.fr", cfg.Site.URL)
	assert.Equal(t, config.EnvProduction, cfg.Site.Env)
	assert.Equal(t, 5, cfg.Contact.RateLimit)
	assert.Equal(t, 600*time.Second, cfg.Contact.RateWindow)
	assert.Equal(t, 20, cfg.Contact.GlobalPerMinute)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.UseTLS)
	assert.Equal(t, 10*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, config.TransportNone, cfg.Transport())
	assert.Empty(t, cfg.ContactFrom())
}

func TestFromMap_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromMap(map[string]string{
		"ADDRESS":             "127.0.0.1:9000",
		"SITE_URL":            "https://example.fr/",
		"ENV":                 "development",
		"TRUST_PROXY":         "true",
		"CONTACT_RATE_LIMIT":  "3",
		"CONTACT_RATE_WINDOW": "1m",
		"SMTP_PORT":           "465",
		"SMTP_USE_TLS":        "false",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, "https://example.fr", cfg.Site.URL)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.Server.TrustProxy)
	assert.Equal(t, 3, cfg.Contact.RateLimit)
	assert.Equal(t, time.Minute, cfg.Contact.RateWindow)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.False(t, cfg.SMTP.UseTLS)
}

func TestFromMap_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		environ map[string]string
		name    string
	}{
		{name: "bad site url", environ: map[string]string{"SITE_URL": "not a url"}},
		{name: "bad env", environ: map[string]string{"ENV": "staging"}},
		{name: "zero rate limit", environ: map[string]string{"CONTACT_RATE_LIMIT": "0"}},
		{name: "port out of range", environ: map[string]string{"SMTP_PORT": "70000"}},
		{name: "bad recipient", environ: map[string]string{"CONTACT_TO": "nobody"}},
		{name: "unparsable duration", environ: map[string]string{"REQUEST_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.FromMap(tt.environ)
			require.Error(t, err)
		})
	}
}

func TestConfig_Transport(t *testing.T) {
	t.Parallel()

	smtpEnv := map[string]string{
		"SMTP_HOST":     "smtp.example.fr",
		"SMTP_USER":     "site@example.fr",
		"SMTP_PASSWORD": "secret",
		"CONTACT_TO":    "contact@example.fr",
	}

	tests := []struct {
		environ   map[string]string
		name      string
		transport string
		from      string
	}{
		{
			name:      "smtp fully configured, from falls back to user",
			environ:   smtpEnv,
			transport: config.TransportSMTP,
			from:      "site@example.fr",
		},
		{
			name:      "smtp with explicit sender",
			environ:   merge(smtpEnv, map[string]string{"CONTACT_FROM": "Site <noreply@example.fr>"}),
			transport: config.TransportSMTP,
			from:      "Site <noreply@example.fr>",
		},
		{
			name:      "smtp without recipient",
			environ:   merge(smtpEnv, map[string]string{"CONTACT_TO": ""}),
			transport: config.TransportNone,
		},
		{
			name:      "smtp without password",
			environ:   merge(smtpEnv, map[string]string{"SMTP_PASSWORD": ""}),
			transport: config.TransportNone,
		},
		{
			name: "resend",
			environ: map[string]string{
				"RESEND_API_KEY":    "re_123",
				"RESEND_FROM_EMAIL": "site@example.fr",
				"CONTACT_TO":        "contact@example.fr",
			},
			transport: config.TransportResend,
			from:      "site@example.fr",
		},
		{
			name: "resend without sender",
			environ: map[string]string{
				"RESEND_API_KEY": "re_123",
				"CONTACT_TO":     "contact@example.fr",
			},
			transport: config.TransportNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.FromMap(tt.environ)
			require.NoError(t, err)
			assert.Equal(t, tt.transport, cfg.Transport())
			assert.Equal(t, tt.from, cfg.ContactFrom())
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CONTACT_RATE_LIMIT=7\n"), 0o600))

	t.Setenv("CONTACT_RATE_LIMIT", "")
	require.NoError(t, os.Unsetenv("CONTACT_RATE_LIMIT"))

	cfg, err := config.Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Contact.RateLimit)
}

func merge(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
