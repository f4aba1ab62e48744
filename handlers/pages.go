package handlers

import (
	"net/http"

	"github.com/glconseil/vitrine/internal"
	"github.com/glconseil/vitrine/pkg/content"
	"github.com/glconseil/vitrine/views"
)

// Pages serves the marketing pages of the catalog.
type Pages struct {
	site *Site
}

// NewPages creates the page handler.
func NewPages(site *Site) *Pages {
	return &Pages{site: site}
}

// Routes registers GET and HEAD for every catalog page.
func (h *Pages) Routes(r internal.Router) {
	for _, p := range h.site.Catalog.Pages() {
		r.GET(p.Path, h.show(p))
		r.HEAD(p.Path, h.show(p))
	}
}

func (h *Pages) show(page *content.Page) internal.HandlerFunc {
	return func(c internal.Context) error {
		meta, err := h.site.SEO.PageMeta(h.site.home(), page)
		if err != nil {
			return internal.ErrInternal("", internal.WithError(err))
		}

		data := views.PageData{
			Chrome: h.site.chrome(c, meta, page.Path),
			Page:   page,
		}
		if page.Schema == content.SchemaContactPage {
			data.ContactSent = c.Query("envoi") == "ok"
		}

		return c.Render(http.StatusOK, h.site.Views.Page(data))
	}
}
