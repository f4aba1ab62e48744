package seo

import (
	"encoding/json"
	"html/template"
	"net/url"
	"strings"

	"github.com/glconseil/vitrine/pkg/content"
)

// Site describes the publisher. Values come from configuration.
type Site struct {
	Name        string
	BaseURL     string // Absolute, without trailing slash
	Locale      string // Open Graph locale, e.g. fr_FR
	Language    string // BCP 47, e.g. fr-FR
	Description string
	Email       string
	Logo        string // Path or absolute URL
	SameAs      []string
}

// NewSite normalizes BaseURL and fills French defaults.
func NewSite(name, baseURL string) Site {
	return Site{
		Name:     name,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Locale:   "fr_FR",
		Language: "fr-FR",
		Logo:     "/static/favicon.svg",
	}
}

// URL returns the absolute URL for a site path.
func (s Site) URL(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return s.BaseURL + p
}

// Canonical returns the canonical URL of a page path. Query strings and
// fragments are dropped; the root keeps its trailing slash.
func (s Site) Canonical(p string) string {
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	if p == "" {
		p = "/"
	}
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	return s.URL(p)
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	Name string
	URL  string
}

// Breadcrumbs returns the trail for page: home first, then the page itself.
// The home page has a single entry.
func (s Site) Breadcrumbs(home, page *content.Page) []Crumb {
	trail := []Crumb{{Name: home.Breadcrumb, URL: s.Canonical(home.Path)}}
	if page.IsHome() {
		return trail
	}
	return append(trail, Crumb{Name: page.Breadcrumb, URL: s.Canonical(page.Path)})
}

// Meta is everything the layout needs for the document head.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OGType      string
	Locale      string
	SiteName    string
	Image       string
	JSONLD      template.JS
	Breadcrumbs []Crumb
}

// PageMeta computes head metadata for page. home is the root page, used for
// the breadcrumb trail. The result is deterministic for a given path.
func (s Site) PageMeta(home, page *content.Page) (Meta, error) {
	crumbs := s.Breadcrumbs(home, page)
	ld, err := s.StructuredData(page, crumbs)
	if err != nil {
		return Meta{}, err
	}

	title := page.Title + " | " + s.Name
	if page.IsHome() {
		title = s.Name + " | " + page.Title
	}
	ogType := "article"
	if page.IsHome() {
		ogType = "website"
	}

	return Meta{
		Title:       title,
		Description: page.Description,
		Canonical:   s.Canonical(page.Path),
		OGType:      ogType,
		Locale:      s.Locale,
		SiteName:    s.Name,
		Image:       s.URL(s.Logo),
		JSONLD:      ld,
		Breadcrumbs: crumbs,
	}, nil
}

// StructuredData returns the JSON-LD graph for page: Organization and WebSite
// on every page, then the page node (WebPage, AboutPage or ContactPage) and a
// BreadcrumbList. The output is safe to embed in a script element.
func (s Site) StructuredData(page *content.Page, crumbs []Crumb) (template.JS, error) {
	orgID := s.URL("/#organization")
	siteID := s.URL("/#website")
	pageURL := s.Canonical(page.Path)

	org := map[string]any{
		"@type": "Organization",
		"@id":   orgID,
		"name":  s.Name,
		"url":   s.URL("/"),
		"logo":  s.URL(s.Logo),
	}
	if s.Email != "" {
		org["email"] = s.Email
	}
	if len(s.SameAs) > 0 {
		org["sameAs"] = s.SameAs
	}

	website := map[string]any{
		"@type":      "WebSite",
		"@id":        siteID,
		"url":        s.URL("/"),
		"name":       s.Name,
		"inLanguage": s.Language,
		"publisher":  map[string]string{"@id": orgID},
	}
	if s.Description != "" {
		website["description"] = s.Description
	}

	items := make([]map[string]any, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     c.URL,
		})
	}
	breadcrumb := map[string]any{
		"@type":           "BreadcrumbList",
		"@id":             pageURL + "#breadcrumb",
		"itemListElement": items,
	}

	webPage := map[string]any{
		"@type":      pageType(page.Schema),
		"@id":        pageURL + "#webpage",
		"url":        pageURL,
		"name":       page.Title,
		"inLanguage": s.Language,
		"isPartOf":   map[string]string{"@id": siteID},
		"about":      map[string]string{"@id": orgID},
		"breadcrumb": map[string]string{"@id": pageURL + "#breadcrumb"},
	}
	if page.Description != "" {
		webPage["description"] = page.Description
	}
	if !page.Updated.IsZero() {
		webPage["dateModified"] = page.Updated.Format("2006-01-02")
	}

	doc := map[string]any{
		"@context": "https://schema.org",
		"@graph":   []any{org, website, webPage, breadcrumb},
	}

	// json.Marshal escapes <, > and & so "</script>" cannot appear.
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil //nolint:gosec // escaped by encoding/json
}

func pageType(schema string) string {
	switch schema {
	case content.SchemaContactPage, content.SchemaAboutPage:
		return schema
	default:
		return content.SchemaWebPage
	}
}
