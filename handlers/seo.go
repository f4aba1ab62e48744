package handlers

import (
	"net/http"

	"github.com/glconseil/vitrine/internal"
)

// FaviconPath is where /favicon.ico redirects.
const FaviconPath = "/static/favicon.svg"

// SEO serves sitemap.xml, robots.txt and the favicon redirect.
type SEO struct {
	site *Site
}

// NewSEO creates the SEO handler.
func NewSEO(site *Site) *SEO {
	return &SEO{site: site}
}

// Routes registers the SEO endpoints.
func (h *SEO) Routes(r internal.Router) {
	r.GET("/sitemap.xml", h.sitemap)
	r.GET("/robots.txt", h.robots)
	r.GET("/favicon.ico", h.favicon)
}

func (h *SEO) sitemap(c internal.Context) error {
	return c.XML(http.StatusOK, h.site.SEO.Sitemap(h.site.Catalog.Pages()))
}

func (h *SEO) robots(c internal.Context) error {
	return c.String(http.StatusOK, h.site.SEO.Robots())
}

func (h *SEO) favicon(c internal.Context) error {
	return c.Redirect(http.StatusMovedPermanently, FaviconPath)
}
