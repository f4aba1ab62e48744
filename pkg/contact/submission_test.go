package contact_test

import (
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/glconseil/vitrine/pkg/contact"
)

func TestParse(t *testing.T) {
	t.Parallel()

	form := url.Values{
		contact.FieldFullName:     {"  Jean\n  Dupont "},
		contact.FieldEmail:        {" jean@example.fr "},
		contact.FieldPhone:        {"06 12 34 56 78"},
		contact.FieldOrganization: {"<b>ACME</b>"},
		contact.FieldRole:         {"DRH"},
		contact.FieldSubject:      {"Circuit\r\nVital"},
		contact.FieldMessage:      {"Bonjour,\r\n\r\nNous voudrions en savoir plus.\x00 "},
		contact.FieldConsent:      {"on"},
		contact.FieldSource:       {"linkedin"},
	}

	sub := contact.Parse(form)

	assert.Equal(t, "Jean Dupont", sub.FullName)
	assert.Equal(t, "jean@example.fr", sub.Email)
	assert.Equal(t, "<b>ACME</b>", sub.Organization)
	assert.Equal(t, "Circuit Vital", sub.Subject)
	assert.Equal(t, "Bonjour,\n\nNous voudrions en savoir plus.", sub.Message)
	assert.True(t, sub.Consent)
	assert.False(t, sub.IsSpam())
}

func TestParse_KeepsAngleBrackets(t *testing.T) {
	t.Parallel()

	msg := "Pouvez-vous me rappeler? Ecrivez a <claire@example.fr> ou si x<y alors ok."
	sub := contact.Parse(url.Values{
		contact.FieldFullName: {"Claire <Dupont>"},
		contact.FieldMessage:  {msg},
	})

	assert.Equal(t, msg, sub.Message)
	assert.Equal(t, "Claire <Dupont>", sub.FullName)
	assert.Equal(t, utf8.RuneCountInString(msg), utf8.RuneCountInString(sub.Message))
	assert.NoError(t, contact.Submission{
		FullName: "Claire", Email: "claire@example.fr", Subject: "s", Consent: true, Message: sub.Message,
	}.Validate())
}

func TestParse_Consent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"on", true},
		{"1", true},
		{"true", true},
		{"OUI", true},
		{"", false},
		{"off", false},
		{"0", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			sub := contact.Parse(url.Values{contact.FieldConsent: {tt.value}})
			assert.Equal(t, tt.want, sub.Consent)
		})
	}
}

func TestParse_NFCMessageLength(t *testing.T) {
	t.Parallel()

	// 50 decomposed "é" normalize to 50 characters.
	sub := contact.Parse(url.Values{contact.FieldMessage: {strings.Repeat("e\u0301", 50)}})
	assert.Equal(t, strings.Repeat("\u00e9", 50), sub.Message)
	assert.NoError(t, contact.Submission{
		FullName: "x", Email: "x@y.fr", Subject: "s", Consent: true, Message: sub.Message,
	}.Validate())
}

func TestSubmission_IsSpam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value []string
		spam  bool
	}{
		{"absent", nil, false},
		{"empty", []string{""}, false},
		{"url", []string{"http://spam"}, true},
		{"single space", []string{" "}, true},
		{"whitespace", []string{"\t\n "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			form := url.Values{}
			if tt.value != nil {
				form[contact.FieldHoneypot] = tt.value
			}
			assert.Equal(t, tt.spam, contact.Parse(form).IsSpam())
		})
	}
}
