// Package handlers wires the site's HTTP endpoints: the six marketing pages,
// sitemap.xml and robots.txt, the contact form API, the cookie consent
// fallback and the application error handler.
package handlers
