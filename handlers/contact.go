package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/glconseil/vitrine/internal"
	"github.com/glconseil/vitrine/middlewares"
	"github.com/glconseil/vitrine/pkg/contact"
)

// MaxContactBody caps the size of a contact form post.
const MaxContactBody = 64 << 10

// ContactSentURL is where browsers without JavaScript land after a
// successful submission.
const ContactSentURL = "/contact?envoi=ok"

const (
	messageUnreadable = "Le formulaire n'a pas pu être lu. Merci de réessayer."
	maxUserAgent      = 512
)

// Submitter runs the contact policy on a submission.
type Submitter interface {
	Submit(ctx context.Context, sub contact.Submission) (contact.Result, error)
}

// ContactResponse is the JSON body of every non-204 answer.
type ContactResponse struct {
	Message string `json:"message"`
	OK      bool   `json:"ok"`
}

// Contact handles POST /api/contact.
type Contact struct {
	service Submitter
}

// NewContact creates the contact form handler.
func NewContact(service Submitter) *Contact {
	return &Contact{service: service}
}

// Routes registers the contact endpoint.
func (h *Contact) Routes(r internal.Router) {
	r.POST("/api/contact", h.submit, noStore)
}

// submit answers 204 for spam, 429 when limited, 400 on validation errors,
// 500 when dispatch fails and 200 otherwise. Errors are rendered as JSON by
// the application error handler.
func (h *Contact) submit(c internal.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, MaxContactBody)

	form, err := c.FormValues()
	if err != nil {
		return internal.ErrBadRequest(messageUnreadable, internal.WithError(err))
	}

	sub := contact.Parse(form)
	sub.IP = c.ClientIP()
	sub.UserAgent = truncate(c.Header("User-Agent"), maxUserAgent)

	// Dispatch failures are logged by the service and reported through the outcome.
	res, err := h.service.Submit(middlewares.GetTimeoutContext(c), sub)

	switch res.Outcome {
	case contact.OutcomeSpam:
		return c.NoContent(http.StatusNoContent)
	case contact.OutcomeLimited:
		return internal.ErrTooManyRequests(res.Message, internal.WithRetryAfter(res.RetryAfter))
	case contact.OutcomeInvalid:
		return internal.ErrBadRequest(res.Message, internal.WithError(res.Err))
	case contact.OutcomeFailed:
		return internal.ErrInternal(res.Message, internal.WithError(err))
	}

	if wantsRedirect(c) {
		return c.Redirect(http.StatusSeeOther, ContactSentURL)
	}
	return c.JSON(http.StatusOK, ContactResponse{OK: true, Message: res.Message})
}

// wantsRedirect reports a plain browser form post: HTML accepted and no
// script marker header.
func wantsRedirect(c internal.Context) bool {
	if c.Header("X-Requested-With") != "" {
		return false
	}
	accept := c.Header("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}

func noStore(next internal.HandlerFunc) internal.HandlerFunc {
	return func(c internal.Context) error {
		c.SetHeader("Cache-Control", "no-store")
		return next(c)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}
