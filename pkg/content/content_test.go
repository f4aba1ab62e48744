package content_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glconseil/vitrine/pkg/content"
)

func pageFS() fstest.MapFS {
	return fstest.MapFS{
		"home.md": {Data: []byte("---\ntitle: Accueil\ndescription: Conseil et accompagnement.\npriority: 1\nchangefreq: weekly\n---\n## Bienvenue\n\nUn texte d'accueil.\n")},
		"contact.md": {Data: []byte("---\ntitle: Contact\nheading: Écrivez-nous\nschema: ContactPage\nupdated: 2025-03-01\n---\n<section class=\"reveal\">\n\nParlons de votre projet.\n\n</section>\n")},
	}
}

var testRoutes = []content.Route{
	{Path: "/", Key: "home"},
	{Path: "/contact", Key: "contact"},
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cat, err := content.Load(pageFS(), testRoutes)
	require.NoError(t, err)

	pages := cat.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, "home", pages[0].Key)
	assert.Equal(t, "contact", pages[1].Key)

	home := pages[0]
	assert.True(t, home.IsHome())
	assert.Equal(t, "Accueil", home.Title)
	assert.Equal(t, "Accueil", home.Heading, "heading defaults to title")
	assert.Equal(t, "Accueil", home.Breadcrumb)
	assert.Equal(t, content.SchemaWebPage, home.Schema)
	assert.Equal(t, "weekly", home.ChangeFreq)
	assert.InDelta(t, 1.0, home.Priority, 0.0001)
	assert.Contains(t, string(home.Body), `<h2 id="bienvenue">Bienvenue</h2>`)
	assert.True(t, home.Updated.IsZero())

	contact := pages[1]
	assert.Equal(t, "Écrivez-nous", contact.Heading)
	assert.Equal(t, content.SchemaContactPage, contact.Schema)
	assert.Equal(t, "monthly", contact.ChangeFreq)
	assert.InDelta(t, 0.5, contact.Priority, 0.0001)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), contact.Updated)
	assert.Contains(t, string(contact.Body), `<section class="reveal">`)
	assert.Contains(t, string(contact.Body), "<p>Parlons de votre projet.</p>")
}

func TestLookup(t *testing.T) {
	t.Parallel()

	cat, err := content.Load(pageFS(), testRoutes)
	require.NoError(t, err)

	tests := []struct {
		path    string
		wantKey string
		wantErr error
	}{
		{"/", "home", nil},
		{"/contact", "contact", nil},
		{"/contact/", "contact", nil},
		{"/inconnu", "", content.ErrPageNotFound},
		{"/contact/extra", "", content.ErrPageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			p, err := cat.Lookup(tt.path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantKey, p.Key)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fs     fstest.MapFS
		routes []content.Route
	}{
		{
			name:   "missing file",
			fs:     fstest.MapFS{},
			routes: []content.Route{{Path: "/", Key: "home"}},
		},
		{
			name:   "unterminated front matter",
			fs:     fstest.MapFS{"home.md": {Data: []byte("---\ntitle: Accueil\n")}},
			routes: []content.Route{{Path: "/", Key: "home"}},
		},
		{
			name:   "missing title",
			fs:     fstest.MapFS{"home.md": {Data: []byte("---\ndescription: x\n---\nbody\n")}},
			routes: []content.Route{{Path: "/", Key: "home"}},
		},
		{
			name:   "bad date",
			fs:     fstest.MapFS{"home.md": {Data: []byte("---\ntitle: Accueil\nupdated: demain\n---\nbody\n")}},
			routes: []content.Route{{Path: "/", Key: "home"}},
		},
		{
			name: "duplicate path",
			fs:   pageFS(),
			routes: []content.Route{
				{Path: "/", Key: "home"},
				{Path: "/", Key: "contact"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := content.Load(tt.fs, tt.routes)
			require.ErrorIs(t, err, content.ErrInvalidPage)
		})
	}
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		"/":             "home",
		"/approche":     "approche",
		"/pcm":          "pcm",
		"/circuitvital": "circuitvital",
		"/a-propos":     "a-propos",
		"/contact":      "contact",
	}
	require.Len(t, content.Routes, len(want))
	for _, r := range content.Routes {
		assert.Equal(t, want[r.Path], r.Key, r.Path)
	}
}
