// Package views renders the site's HTML as templ components.
//
// The markup lives in html/template files (layout, page, contact form, error
// page) embedded by package web; Views wraps each execution in a
// templ.Component so handlers render through Context.Render like any other
// component.
package views
