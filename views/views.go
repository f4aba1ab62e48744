package views

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/a-h/templ"

	"github.com/glconseil/vitrine/pkg/content"
	"github.com/glconseil/vitrine/pkg/seo"
)

// ErrTemplates wraps template parse failures returned by New.
var ErrTemplates = errors.New("views: invalid templates")

// ContactSubjects are the choices offered in the contact form.
var ContactSubjects = []string{
	"Coaching individuel",
	"Formation d'équipe",
	"Circuit Vital",
	"Process Communication Model",
	"Autre demande",
}

// ContactSources are the "how did you hear about us" choices.
var ContactSources = []string{
	"Recherche sur internet",
	"Recommandation",
	"Réseaux sociaux",
	"Événement ou conférence",
	"Autre",
}

// NavItem is one entry of the main navigation.
type NavItem struct {
	Label   string
	Path    string
	Current bool
}

// Nav builds the navigation from the catalog, marking currentPath.
func Nav(pages []*content.Page, currentPath string) []NavItem {
	items := make([]NavItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, NavItem{
			Label:   p.Breadcrumb,
			Path:    p.Path,
			Current: p.Path == currentPath,
		})
	}
	return items
}

// Chrome is the data shared by every page: head metadata and the site frame.
type Chrome struct {
	Meta             seo.Meta
	SiteName         string
	AssetVersion     string
	Nav              []NavItem
	Year             int
	NoIndex          bool
	ShowCookieBanner bool // false once the visitor accepted cookies
}

// PageData renders a catalog page.
type PageData struct {
	Chrome
	Page        *content.Page
	Subjects    []string
	Sources     []string
	ContactSent bool // set after a non-JS form post succeeded
}

// ErrorData renders the error page.
type ErrorData struct {
	Chrome
	Title     string
	Message   string
	RequestID string
	Status    int
}

// Views renders the site's HTML. Templates are parsed once by New.
type Views struct {
	page  *template.Template
	error *template.Template
}

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
}

// New parses layout.html with the page and error templates from fsys.
func New(fsys fs.FS) (*Views, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(fsys, "layout.html", "contact_form.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplates, err)
	}

	page, err := extend(base, fsys, "page.html")
	if err != nil {
		return nil, err
	}
	errPage, err := extend(base, fsys, "error.html")
	if err != nil {
		return nil, err
	}

	return &Views{page: page, error: errPage}, nil
}

func extend(base *template.Template, fsys fs.FS, name string) (*template.Template, error) {
	clone, err := base.Clone()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplates, err)
	}
	t, err := clone.ParseFS(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplates, name, err)
	}
	return t, nil
}

// Page returns the component for a catalog page.
func (v *Views) Page(data PageData) templ.Component {
	if data.Subjects == nil {
		data.Subjects = ContactSubjects
	}
	if data.Sources == nil {
		data.Sources = ContactSources
	}
	return component(v.page, data)
}

// Error returns the component for the error page.
func (v *Views) Error(data ErrorData) templ.Component {
	return component(v.error, data)
}

func component(t *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := t.ExecuteTemplate(w, "layout", data); err != nil {
			return fmt.Errorf("views: render: %w", err)
		}
		return nil
	})
}
