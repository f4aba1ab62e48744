package contact

import (
	"net/url"
	"strings"
	"time"

	"github.com/glconseil/vitrine/pkg/sanitizer"
)

// Form field names.
const (
	FieldFullName     = "full_name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldOrganization = "organization"
	FieldRole         = "role"
	FieldSubject      = "subject"
	FieldMessage      = "message"
	FieldConsent      = "consent"
	FieldSource       = "source"
	FieldHoneypot     = "website"
)

// Submission is a normalized contact form submission.
type Submission struct {
	ReceivedAt   time.Time
	ID           string
	FullName     string
	Email        string
	Phone        string
	Organization string
	Role         string
	Subject      string
	Message      string
	Source       string
	Honeypot     string
	IP           string
	UserAgent    string
	Consent      bool
}

// Parse builds a Submission from form values. Single-line fields are
// collapsed to one line; the message keeps its line breaks. Text is
// NFC-normalized and kept verbatim otherwise. The honeypot is kept raw so
// that whitespace still counts as filled.
func Parse(form url.Values) Submission {
	return Submission{
		FullName:     sanitizer.Line(form.Get(FieldFullName)),
		Email:        sanitizer.Line(form.Get(FieldEmail)),
		Phone:        sanitizer.Line(form.Get(FieldPhone)),
		Organization: sanitizer.Line(form.Get(FieldOrganization)),
		Role:         sanitizer.Line(form.Get(FieldRole)),
		Subject:      sanitizer.Line(form.Get(FieldSubject)),
		Message:      sanitizer.Text(form.Get(FieldMessage)),
		Source:       sanitizer.Line(form.Get(FieldSource)),
		Honeypot:     form.Get(FieldHoneypot),
		Consent:      checked(form.Get(FieldConsent)),
	}
}

// IsSpam reports whether the honeypot field was filled.
func (s Submission) IsSpam() bool {
	return s.Honeypot != ""
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "1", "true", "yes", "oui":
		return true
	}
	return false
}
