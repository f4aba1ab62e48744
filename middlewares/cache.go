package middlewares

import (
	"net/http"
	"strings"

	"github.com/glconseil/vitrine/internal"
)

// Cache-Control values per path class.
const (
	CacheStatic = "public, max-age=31536000, immutable"
	CachePage   = "public, max-age=300"
	CacheMeta   = "public, max-age=3600"
	CacheNone   = "no-store"
)

// CacheControlConfig maps path classes to Cache-Control values.
type CacheControlConfig struct {
	StaticPrefix string
	APIPrefix    string
	MetaPaths    []string // Exact paths served with CacheMeta (sitemap, robots)
}

// CacheControlOption configures CacheControlConfig.
type CacheControlOption func(*CacheControlConfig)

// WithCacheMetaPaths adds exact paths cached like the sitemap.
func WithCacheMetaPaths(paths ...string) CacheControlOption {
	return func(cfg *CacheControlConfig) {
		cfg.MetaPaths = append(cfg.MetaPaths, paths...)
	}
}

// CacheControlFor returns the Cache-Control value for a request path.
// Health endpoints and anything under the API prefix are never cached.
func (cfg *CacheControlConfig) CacheControlFor(path string) string {
	switch {
	case strings.HasPrefix(path, cfg.StaticPrefix):
		return CacheStatic
	case strings.HasPrefix(path, cfg.APIPrefix), strings.HasPrefix(path, "/health/"):
		return CacheNone
	}
	for _, p := range cfg.MetaPaths {
		if path == p {
			return CacheMeta
		}
	}
	return CachePage
}

// CacheControl returns middleware that sets Cache-Control by path class.
//
// The header is applied just before the first write and only to successful
// GET/HEAD responses; errors, redirects and POSTs get no-store. A handler that
// sets Cache-Control itself wins.
func CacheControl(opts ...CacheControlOption) internal.Middleware {
	cfg := &CacheControlConfig{
		StaticPrefix: "/static/",
		APIPrefix:    "/api/",
		MetaPaths:    []string{"/sitemap.xml", "/robots.txt"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			rw := c.ResponseWriter()
			method := c.Request().Method
			value := cfg.CacheControlFor(c.Request().URL.Path)

			rw.OnBeforeWrite(func() {
				h := rw.Header()
				if h.Get("Cache-Control") != "" {
					return
				}
				if (method != http.MethodGet && method != http.MethodHead) || rw.Status() >= 300 {
					h.Set("Cache-Control", CacheNone)
					return
				}
				h.Set("Cache-Control", value)
			})

			return next(c)
		}
	}
}
