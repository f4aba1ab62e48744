package handlers

import (
	"net/http"
	"net/url"

	"github.com/glconseil/vitrine/internal"
	"github.com/glconseil/vitrine/pkg/cookie"
)

// Consent records cookie banner dismissal for browsers without JavaScript.
// With JavaScript, app.js sets the same cookie client side.
type Consent struct {
	site    *Site
	cookies *cookie.Manager
}

// NewConsent creates the consent handler. secure marks the cookie Secure.
// The cookie stays readable from JavaScript so app.js can hide the banner.
func NewConsent(site *Site, secure bool) *Consent {
	return &Consent{
		site: site,
		cookies: cookie.New(
			cookie.WithHTTPOnly(false),
			cookie.WithSecure(secure),
			cookie.WithSameSite(http.SameSiteLaxMode),
		),
	}
}

// Routes registers the consent endpoint.
func (h *Consent) Routes(r internal.Router) {
	r.POST("/cookies/consentement", h.accept, noStore)
}

func (h *Consent) accept(c internal.Context) error {
	h.cookies.Set(c.Response(), ConsentCookie, "1", ConsentMaxAge)
	return c.Redirect(http.StatusSeeOther, h.returnPath(c.Form("retour")))
}

// returnPath keeps only the path of target and only when it is a catalog
// page, so the endpoint cannot be used as an open redirect.
func (h *Consent) returnPath(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return "/"
	}
	p, err := h.site.Catalog.Lookup(u.Path)
	if err != nil {
		return "/"
	}
	return p.Path
}
