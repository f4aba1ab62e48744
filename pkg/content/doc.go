// Package content loads the site's page copy.
//
// Each page lives in a markdown file named after its key, with YAML front
// matter for the metadata used by the layout, the structured data and the
// sitemap:
//
//	---
//	title: Notre approche
//	description: Une démarche d'accompagnement centrée sur la personne.
//	breadcrumb: Approche
//	priority: 0.8
//	changefreq: monthly
//	schema: WebPage
//	updated: 2025-01-15
//	---
//	## Un accompagnement sur mesure
//
// Load renders every page once; a missing or broken file is a startup error
// rather than a 500 at request time.
package content
