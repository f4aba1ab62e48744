package middlewares

import (
	"github.com/crewjam/csp"

	"github.com/glconseil/vitrine/internal"
)

// DefaultContentSecurityPolicy allows first-party resources only.
// Images may also be inline data URIs (the SVG logo in the header).
var DefaultContentSecurityPolicy = csp.Header{
	DefaultSrc: []string{"'self'"},
	ScriptSrc:  []string{"'self'"},
	StyleSrc:   []string{"'self'"},
	ImgSrc:     []string{"'self'", "data:"},
	FontSrc:    []string{"'self'"},
	ConnectSrc: []string{"'self'"},
	ObjectSrc:  []string{"'none'"},
}

// navigationDirectives are not fetch directives and are appended as is.
const navigationDirectives = "frame-ancestors 'none'; form-action 'self'; base-uri 'self'"

// SecureHeadersConfig configures the security headers middleware.
type SecureHeadersConfig struct {
	ContentSecurityPolicy string
	ReferrerPolicy        string
	PermissionsPolicy     string
	FrameOptions          string
	HSTS                  string // Empty disables Strict-Transport-Security
}

// SecureHeadersOption configures SecureHeadersConfig.
type SecureHeadersOption func(*SecureHeadersConfig)

// WithCSP replaces the Content-Security-Policy header.
func WithCSP(h csp.Header) SecureHeadersOption {
	return func(cfg *SecureHeadersConfig) {
		cfg.ContentSecurityPolicy = h.String() + "; " + navigationDirectives
	}
}

// WithHSTS enables Strict-Transport-Security. Only set it when the site is
// served exclusively over HTTPS.
func WithHSTS(value string) SecureHeadersOption {
	return func(cfg *SecureHeadersConfig) {
		cfg.HSTS = value
	}
}

// SecureHeaders returns middleware that sets the browser hardening headers on
// every response.
func SecureHeaders(opts ...SecureHeadersOption) internal.Middleware {
	cfg := &SecureHeadersConfig{
		ContentSecurityPolicy: DefaultContentSecurityPolicy.String() + "; " + navigationDirectives,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "camera=(), microphone=(), geolocation=(), interest-cohort=()",
		FrameOptions:          "DENY",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.SetHeader("Content-Security-Policy", cfg.ContentSecurityPolicy)
			c.SetHeader("X-Content-Type-Options", "nosniff")
			c.SetHeader("X-Frame-Options", cfg.FrameOptions)
			c.SetHeader("Referrer-Policy", cfg.ReferrerPolicy)
			c.SetHeader("Permissions-Policy", cfg.PermissionsPolicy)
			if cfg.HSTS != "" {
				c.SetHeader("Strict-Transport-Security", cfg.HSTS)
			}
			return next(c)
		}
	}
}
