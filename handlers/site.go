package handlers

import (
	"time"

	"github.com/glconseil/vitrine/internal"
	"github.com/glconseil/vitrine/pkg/content"
	"github.com/glconseil/vitrine/pkg/seo"
	"github.com/glconseil/vitrine/views"
)

// ConsentCookie records that the visitor dismissed the cookie banner.
const ConsentCookie = "gl_cookie_consent"

// ConsentMaxAge is 180 days, in seconds.
const ConsentMaxAge = 180 * 24 * 60 * 60

var consent = internal.NewExtractor(internal.FromCookie(ConsentCookie))

// Site bundles what every HTML response needs: templates, the page catalog
// and the SEO description of the site.
type Site struct {
	Views        *views.Views
	Catalog      *content.Catalog
	Now          func() time.Time
	SEO          seo.Site
	AssetVersion string
}

// home returns the root page. Load guarantees it exists for content.Routes.
func (s *Site) home() *content.Page {
	p, err := s.Catalog.Lookup("/")
	if err != nil {
		return &content.Page{Path: "/", Title: s.SEO.Name, Breadcrumb: "Accueil"}
	}
	return p
}

func (s *Site) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// chrome builds the frame shared by pages and error pages.
// The cookie banner is left out once the consent cookie is present, so it
// never flashes on screen.
func (s *Site) chrome(c internal.Context, meta seo.Meta, currentPath string) views.Chrome {
	_, consented := consent.Extract(c)
	return views.Chrome{
		Meta:             meta,
		SiteName:         s.SEO.Name,
		AssetVersion:     s.AssetVersion,
		Nav:              views.Nav(s.Catalog.Pages(), currentPath),
		Year:             s.now().Year(),
		ShowCookieBanner: !consented,
	}
}
