package handlers_test

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glconseil/vitrine/handlers"
	"github.com/glconseil/vitrine/internal"
	"github.com/glconseil/vitrine/middlewares"
	"github.com/glconseil/vitrine/pkg/contact"
	"github.com/glconseil/vitrine/pkg/content"
	"github.com/glconseil/vitrine/pkg/ratelimit"
	"github.com/glconseil/vitrine/pkg/seo"
	"github.com/glconseil/vitrine/views"
	"github.com/glconseil/vitrine/web"
)

type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingNotifier struct {
	err   error
	last  atomic.Pointer[contact.Submission]
	calls atomic.Int32
}

func (n *recordingNotifier) Notify(_ context.Context, sub contact.Submission) error {
	n.calls.Add(1)
	n.last.Store(&sub)
	return n.err
}

func (n *recordingNotifier) Enabled() bool { return true }

type testApp struct {
	app   *internal.App
	clock *fakeClock
}

func newTestApp(t *testing.T, notifier contact.Notifier) *testApp {
	t.Helper()

	v, err := views.New(web.Templates())
	require.NoError(t, err)
	cat, err := content.Load(web.Content(), content.Routes)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	site := &handlers.Site{
		Views:        v,
		Catalog:      cat,
		Now:          clock.Now,
		SEO:          seo.NewSite("GL Conseil", "https://www.gl-conseil.fr"),
		AssetVersion: "test",
	}

	limiter := ratelimit.New(
		ratelimit.WithLimit(5),
		ratelimit.WithWindow(10*time.Minute),
		ratelimit.WithClock(clock.Now),
	)
	t.Cleanup(func() { _ = limiter.Close() })

	service := contact.NewService(limiter, notifier, contact.WithClock(clock.Now))

	app := internal.New(
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.SecureHeaders(),
			middlewares.CacheControl(),
		),
		internal.WithErrorHandler(handlers.ErrorHandler(site)),
		internal.WithNotFoundHandler(handlers.NotFound),
		internal.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		internal.WithHandlers(
			handlers.NewPages(site),
			handlers.NewSEO(site),
			handlers.NewContact(service),
			handlers.NewConsent(site, false),
		),
	)
	return &testApp{app: app, clock: clock}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.app.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func validForm() url.Values {
	return url.Values{
		contact.FieldFullName:     {"Claire Martin"},
		contact.FieldEmail:        {"claire.martin@example.fr"},
		contact.FieldOrganization: {"Atelier Martin"},
		contact.FieldSubject:      {"Accompagnement d'équipe"},
		contact.FieldMessage:      {strings.Repeat("Bonjour, ", 6)},
		contact.FieldConsent:      {"on"},
	}
}

// postContact sends the form the way app.js does.
func (a *testApp) postContact(form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "fetch")
	return a.do(req)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handlers.ContactResponse {
	t.Helper()

	var resp handlers.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestPages(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, contact.NopNotifier{})

	tests := []struct {
		path  string
		title string
	}{
		{"/", "<title>GL Conseil | Accueil</title>"},
		{"/approche", "<title>Notre approche | GL Conseil</title>"},
		{"/pcm", "<title>Process Communication Model | GL Conseil</title>"},
		{"/circuitvital", "<title>Circuit Vital | GL Conseil</title>"},
		{"/a-propos", "<title>À propos | GL Conseil</title>"},
		{"/contact", "<title>Contact | GL Conseil</title>"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			w := a.get(tt.path)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Equal(t, middlewares.CachePage, w.Header().Get("Cache-Control"))
			assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

			body := w.Body.String()
			assert.Contains(t, body, tt.title)
			assert.Contains(t, body, `<html lang="fr">`)
			assert.Contains(t, body, `rel="canonical" href="https://www.gl-conseil.fr`+tt.path)
			assert.Contains(t, body, "application/ld+json")
			assert.NotContains(t, body, "noindex")
			assert.Contains(t, body, "&copy; 2025")
		})
	}

	t.Run("head", func(t *testing.T) {
		t.Parallel()

		w := a.do(httptest.NewRequest(http.MethodHead, "/approche", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("only the contact page has the form", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, a.get("/contact").Body.String(), "data-contact-form")
		assert.NotContains(t, a.get("/pcm").Body.String(), "data-contact-form")
	})

	t.Run("success notice after redirect", func(t *testing.T) {
		t.Parallel()

		assert.NotContains(t, a.get("/contact").Body.String(), "form-status is-success")
		assert.Contains(t, a.get(handlers.ContactSentURL).Body.String(), "form-status is-success")
	})
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, contact.NopNotifier{})

	t.Run("html", func(t *testing.T) {
		t.Parallel()

		w := a.get("/services")

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, middlewares.CacheNone, w.Header().Get("Cache-Control"))

		body := w.Body.String()
		assert.Contains(t, body, "Page introuvable")
		assert.Contains(t, body, `content="noindex, nofollow"`)
		assert.Contains(t, body, w.Header().Get("X-Request-ID"))
	})

	t.Run("json under api", func(t *testing.T) {
		t.Parallel()

		w := a.get("/api/inconnu")

		require.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.OK)
		assert.NotEmpty(t, resp.Message)
	})

	t.Run("wrong method on contact endpoint", func(t *testing.T) {
		t.Parallel()

		w := a.get("/api/contact")

		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.False(t, decodeResponse(t, w).OK)
	})
}

func TestSEOEndpoints(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, contact.NopNotifier{})

	t.Run("sitemap", func(t *testing.T) {
		t.Parallel()

		w := a.get("/sitemap.xml")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, middlewares.CacheMeta, w.Header().Get("Cache-Control"))

		var set seo.URLSet
		require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &set))
		require.Len(t, set.URLs, len(content.Routes))
		assert.Equal(t, "https://www.gl-conseil.fr/", set.URLs[0].Loc)
		assert.Equal(t, "1.0", set.URLs[0].Priority)
		for _, u := range set.URLs {
			assert.NotEmpty(t, u.LastMod, u.Loc)
		}
	})

	t.Run("robots", func(t *testing.T) {
		t.Parallel()

		w := a.get("/robots.txt")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, middlewares.CacheMeta, w.Header().Get("Cache-Control"))
		body := w.Body.String()
		assert.Contains(t, body, "User-agent: *")
		assert.Contains(t, body, "Disallow: /api/")
		assert.Contains(t, body, "Sitemap: https://www.gl-conseil.fr/sitemap.xml")
	})

	t.Run("favicon", func(t *testing.T) {
		t.Parallel()

		w := a.get("/favicon.ico")

		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, handlers.FaviconPath, w.Header().Get("Location"))
	})
}

func TestContact(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()

		n := &recordingNotifier{}
		a := newTestApp(t, n)

		w := a.postContact(validForm())

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		resp := decodeResponse(t, w)
		assert.True(t, resp.OK)
		assert.Equal(t, contact.MessageSent, resp.Message)
		assert.Equal(t, int32(1), n.calls.Load())
	})

	t.Run("accepted without transport", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t, contact.NopNotifier{})

		w := a.postContact(validForm())

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decodeResponse(t, w).OK)
	})

	t.Run("honeypot is dropped silently", func(t *testing.T) {
		t.Parallel()

		n := &recordingNotifier{}
		a := newTestApp(t, n)

		form := validForm()
		form.Set(contact.FieldHoneypot, "https://spam.example")
		for range 7 {
			w := a.postContact(form)
			require.Equal(t, http.StatusNoContent, w.Code)
			assert.Empty(t, w.Body.String())
		}
		assert.Zero(t, n.calls.Load())

		// Spam never consumes the sender's quota.
		assert.Equal(t, http.StatusOK, a.postContact(validForm()).Code)
	})

	t.Run("whitespace honeypot is spam", func(t *testing.T) {
		t.Parallel()

		n := &recordingNotifier{}
		a := newTestApp(t, n)

		form := validForm()
		form.Set(contact.FieldHoneypot, " ")
		w := a.postContact(form)

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Zero(t, n.calls.Load())
	})

	t.Run("message with angle brackets is sent verbatim", func(t *testing.T) {
		t.Parallel()

		n := &recordingNotifier{}
		a := newTestApp(t, n)

		msg := "Pouvez-vous me rappeler? Ecrivez a <claire@example.fr> ou si x<y alors ok."
		form := validForm()
		form.Set(contact.FieldMessage, msg)
		w := a.postContact(form)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		sub := n.last.Load()
		require.NotNil(t, sub)
		assert.Equal(t, msg, sub.Message)
	})

	t.Run("rate limited after five submissions", func(t *testing.T) {
		t.Parallel()

		n := &recordingNotifier{}
		a := newTestApp(t, n)

		for i := range 5 {
			require.Equal(t, http.StatusOK, a.postContact(validForm()).Code, "submission %d", i+1)
		}

		w := a.postContact(validForm())
		require.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "600", w.Header().Get("Retry-After"))
		resp := decodeResponse(t, w)
		assert.False(t, resp.OK)
		assert.Equal(t, contact.MessageLimited, resp.Message)
		assert.Equal(t, int32(5), n.calls.Load())

		a.clock.Advance(10*time.Minute + time.Second)
		assert.Equal(t, http.StatusOK, a.postContact(validForm()).Code)
	})

	t.Run("message length boundary", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t, contact.NopNotifier{})

		short := validForm()
		short.Set(contact.FieldMessage, strings.Repeat("é", contact.MessageMinLength-1))
		w := a.postContact(short)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeResponse(t, w).Message, "au moins 50 caractères")

		exact := validForm()
		exact.Set(contact.FieldMessage, strings.Repeat("é", contact.MessageMinLength))
		assert.Equal(t, http.StatusOK, a.postContact(exact).Code)
	})

	t.Run("invalid fields are reported together", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t, contact.NopNotifier{})

		form := validForm()
		form.Set(contact.FieldEmail, "claire.martin")
		form.Del(contact.FieldConsent)
		w := a.postContact(form)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.OK)
		assert.Contains(t, resp.Message, "adresse e-mail valide")
		assert.Contains(t, resp.Message, "accepter")
	})

	t.Run("dispatch failure hides the cause", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t, &recordingNotifier{err: errors.New("smtp: 554 relay denied")})

		w := a.postContact(validForm())

		require.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.OK)
		assert.Equal(t, contact.MessageFailed, resp.Message)
		assert.NotContains(t, w.Body.String(), "relay")
	})

	t.Run("plain form post redirects", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t, contact.NopNotifier{})

		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(validForm().Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
		w := a.do(req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, handlers.ContactSentURL, w.Header().Get("Location"))
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()

		a := newTestApp(t, contact.NopNotifier{})

		form := validForm()
		form.Set(contact.FieldMessage, strings.Repeat("a", handlers.MaxContactBody+1))
		w := a.postContact(form)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, decodeResponse(t, w).OK)
	})
}

func TestConsent(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, contact.NopNotifier{})

	post := func(retour string) *httptest.ResponseRecorder {
		form := url.Values{"retour": {retour}}
		req := httptest.NewRequest(http.MethodPost, "/cookies/consentement", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return a.do(req)
	}

	t.Run("sets the cookie and returns to the page", func(t *testing.T) {
		t.Parallel()

		w := post("/pcm")

		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/pcm", w.Header().Get("Location"))
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, handlers.ConsentCookie, c.Name)
		assert.Equal(t, "1", c.Value)
		assert.Equal(t, handlers.ConsentMaxAge, c.MaxAge)
		assert.False(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	tests := []struct {
		name   string
		retour string
		want   string
	}{
		{"external url", "https://evil.example/pcm", "/pcm"},
		{"protocol relative", "//evil.example", "/"},
		{"unknown path", "/admin", "/"},
		{"empty", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := post(tt.retour)

			require.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}

	t.Run("banner hidden once consented", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, a.get("/").Body.String(), "cookie-banner")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: handlers.ConsentCookie, Value: "1"})
		assert.NotContains(t, a.do(req).Body.String(), "cookie-banner")
	})
}
