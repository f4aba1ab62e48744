package internal

import "strings"

// ExtractorSource reads one candidate value from the request.
type ExtractorSource = func(Context) (string, bool)

// Extractor returns the first non-empty value among its sources.
// The request ID middleware reads inbound trace headers with it; the site
// handlers read the consent cookie.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor over sources, tried in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first hit, or ("", false).
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader reads a request header. Surrounding spaces are trimmed and
// values carrying control characters are ignored, since they end up in
// response headers and log lines.
func FromHeader(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		return clean(c.Header(name))
	}
}

// FromCookie reads a plain cookie.
func FromCookie(name string) ExtractorSource {
	return func(c Context) (string, bool) {
		v, err := c.Cookie(name)
		if err != nil {
			return "", false
		}
		return clean(v)
	}
}

func clean(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	if strings.ContainsFunc(v, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return "", false
	}
	return v, true
}
