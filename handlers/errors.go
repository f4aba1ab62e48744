package handlers

import (
	"net/http"
	"strings"

	"github.com/glconseil/vitrine/internal"
	"github.com/glconseil/vitrine/middlewares"
	"github.com/glconseil/vitrine/pkg/seo"
	"github.com/glconseil/vitrine/views"
)

type errorCopy struct {
	title   string
	message string
}

// French copy per status. Anything else falls back to 500.
var errorCopies = map[int]errorCopy{
	http.StatusBadRequest: {
		"Requête invalide",
		"La requête n'a pas pu être traitée.",
	},
	http.StatusNotFound: {
		"Page introuvable",
		"La page que vous cherchez n'existe pas ou a été déplacée.",
	},
	http.StatusMethodNotAllowed: {
		"Méthode non autorisée",
		"Cette adresse ne prend pas en charge ce type de requête.",
	},
	http.StatusTooManyRequests: {
		"Trop de requêtes",
		"Merci de patienter quelques minutes avant de réessayer.",
	},
	http.StatusInternalServerError: {
		"Erreur interne",
		"Une erreur est survenue de notre côté. Merci de réessayer plus tard.",
	},
	http.StatusServiceUnavailable: {
		"Service momentanément indisponible",
		"Le site est momentanément surchargé. Merci de réessayer dans quelques instants.",
	},
}

// NotFound is the handler for unmapped paths.
func NotFound(internal.Context) error {
	return internal.ErrNotFound("")
}

// MethodNotAllowed is the handler for known paths hit with the wrong method.
func MethodNotAllowed(internal.Context) error {
	return internal.ErrMethodNotAllowed("")
}

// ErrorHandler renders handler errors: JSON {ok, message} under /api/ and
// the HTML error page elsewhere. Only HTTPError messages reach the client;
// any other error becomes a generic 500.
func ErrorHandler(site *Site) internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		status := http.StatusInternalServerError
		var message, title string
		he := internal.AsHTTPError(err)

		switch {
		case he != nil:
			status = he.Code
			message, title = he.Message, he.Title
			if secs := he.RetryAfterSeconds(); secs != "" {
				c.SetHeader("Retry-After", secs)
			}
		case middlewares.IsTimeoutError(err):
			status = http.StatusServiceUnavailable
		}

		text, ok := errorCopies[status]
		if !ok {
			status = http.StatusInternalServerError
			text = errorCopies[status]
			message, title = "", ""
		}
		if message == "" {
			message = text.message
		}
		if title == "" {
			title = text.title
		}

		if status >= http.StatusInternalServerError {
			attrs := []any{"status", status, "error", err.Error()}
			if he != nil && he.Err != nil {
				attrs = append(attrs, "cause", he.Err.Error())
			}
			c.LogError("request failed", attrs...)
		}

		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			c.SetHeader("Cache-Control", "no-store")
			return c.JSON(status, ContactResponse{OK: false, Message: message})
		}

		data := views.ErrorData{
			Chrome:    site.chrome(c, seo.Meta{Title: title + " | " + site.SEO.Name}, ""),
			Status:    status,
			Title:     title,
			Message:   message,
			RequestID: middlewares.GetRequestID(c),
		}
		data.NoIndex = true
		if rerr := c.Render(status, site.Views.Error(data)); rerr != nil {
			http.Error(c.Response(), title, status)
			return rerr
		}
		return nil
	}
}
