package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/glconseil/vitrine/pkg/frontmatter"
)

var (
	// ErrPageNotFound is returned by Catalog.Lookup for unmapped paths.
	ErrPageNotFound = errors.New("content: page not found")
	// ErrInvalidPage is returned by Load when a content file is unusable.
	ErrInvalidPage = errors.New("content: invalid page")
)

// Route binds a URL path to a content file key.
type Route struct {
	Path string
	Key  string
}

// Routes are the site's pages, in navigation order.
var Routes = []Route{
	{Path: "/", Key: "home"},
	{Path: "/approche", Key: "approche"},
	{Path: "/pcm", Key: "pcm"},
	{Path: "/circuitvital", Key: "circuitvital"},
	{Path: "/a-propos", Key: "a-propos"},
	{Path: "/contact", Key: "contact"},
}

// Schema.org page types accepted in front matter.
const (
	SchemaWebPage     = "WebPage"
	SchemaAboutPage   = "AboutPage"
	SchemaContactPage = "ContactPage"
)

// Page is one rendered marketing page.
type Page struct {
	Updated     time.Time
	Key         string
	Path        string
	Title       string        // <title> and og:title
	Description string        // meta description
	Heading     string        // visible h1
	Breadcrumb  string        // label in the breadcrumb trail
	Schema      string        // schema.org type
	ChangeFreq  string        // sitemap changefreq
	Body        template.HTML // rendered markdown
	Priority    float64       // sitemap priority
}

// IsHome reports whether the page is the site root.
func (p *Page) IsHome() bool { return p.Path == "/" }

type meta struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Heading     string  `yaml:"heading"`
	Breadcrumb  string  `yaml:"breadcrumb"`
	Schema      string  `yaml:"schema"`
	ChangeFreq  string  `yaml:"changefreq"`
	Updated     string  `yaml:"updated"`
	Priority    float64 `yaml:"priority"`
}

// Catalog holds every page, rendered once at startup. It is read-only after
// Load and safe for concurrent use.
type Catalog struct {
	byPath map[string]*Page
	pages  []*Page
}

// Load reads <key>.md for every route from fsys and renders it.
// Any missing or malformed file fails the whole load.
func Load(fsys fs.FS, routes []Route) (*Catalog, error) {
	md := newMarkdown()
	c := &Catalog{
		byPath: make(map[string]*Page, len(routes)),
		pages:  make([]*Page, 0, len(routes)),
	}

	for _, r := range routes {
		if _, dup := c.byPath[r.Path]; dup {
			return nil, fmt.Errorf("%w: duplicate path %s", ErrInvalidPage, r.Path)
		}
		page, err := loadPage(fsys, md, r)
		if err != nil {
			return nil, err
		}
		c.byPath[r.Path] = page
		c.pages = append(c.pages, page)
	}

	return c, nil
}

func loadPage(fsys fs.FS, md goldmark.Markdown, r Route) (*Page, error) {
	name := r.Key + ".md"
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPage, name, err)
	}

	var m meta
	body, err := frontmatter.Parse(raw, &m)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPage, name, err)
	}
	if strings.TrimSpace(m.Title) == "" {
		return nil, fmt.Errorf("%w: %s: title is required", ErrInvalidPage, name)
	}

	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPage, name, err)
	}

	page := &Page{
		Key:         r.Key,
		Path:        r.Path,
		Title:       m.Title,
		Description: m.Description,
		Heading:     orDefault(m.Heading, m.Title),
		Breadcrumb:  orDefault(m.Breadcrumb, m.Title),
		Schema:      orDefault(m.Schema, SchemaWebPage),
		ChangeFreq:  orDefault(m.ChangeFreq, "monthly"),
		Priority:    m.Priority,
		Body:        template.HTML(buf.String()), //nolint:gosec // first-party content
	}
	if page.Priority <= 0 || page.Priority > 1 {
		page.Priority = 0.5
	}
	if m.Updated != "" {
		t, err := time.Parse(time.DateOnly, m.Updated)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: updated: %v", ErrInvalidPage, name, err)
		}
		page.Updated = t
	}

	return page, nil
}

// newMarkdown renders trusted page copy. Raw HTML is kept so sections can
// carry layout classes.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// Lookup returns the page served at urlPath. A trailing slash is ignored.
func (c *Catalog) Lookup(urlPath string) (*Page, error) {
	if urlPath != "/" {
		urlPath = strings.TrimSuffix(path.Clean(urlPath), "/")
	}
	if p, ok := c.byPath[urlPath]; ok {
		return p, nil
	}
	return nil, ErrPageNotFound
}

// Pages returns all pages in route order.
func (c *Catalog) Pages() []*Page {
	out := make([]*Page, len(c.pages))
	copy(out, c.pages)
	return out
}

func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
