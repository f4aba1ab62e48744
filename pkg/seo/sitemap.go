package seo

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/glconseil/vitrine/pkg/content"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet is the root element of a sitemap.
type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap builds the sitemap document for pages, in the given order.
func (s Site) Sitemap(pages []*content.Page) URLSet {
	set := URLSet{XMLNS: sitemapNS, URLs: make([]SitemapURL, 0, len(pages))}
	for _, p := range pages {
		u := SitemapURL{
			Loc:        s.Canonical(p.Path),
			ChangeFreq: p.ChangeFreq,
			Priority:   strconv.FormatFloat(p.Priority, 'f', 1, 64),
		}
		if !p.Updated.IsZero() {
			u.LastMod = p.Updated.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}
	return set
}

// Robots returns robots.txt allowing everything except the API and health
// endpoints, and pointing at the sitemap.
func (s Site) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /health/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + s.URL("/sitemap.xml") + "\n")
	return b.String()
}
