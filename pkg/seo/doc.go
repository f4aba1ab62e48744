// Package seo derives search-engine metadata from the page catalog:
// canonical URLs, the breadcrumb trail, the schema.org JSON-LD graph, the
// XML sitemap and robots.txt.
//
// Everything is computed from the request path and the page front matter, so
// the output for a given page never varies between requests.
package seo
