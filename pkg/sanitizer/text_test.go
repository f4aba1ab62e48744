package sanitizer_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/glconseil/vitrine/pkg/sanitizer"
)

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims surrounding space", "  bonjour  \n", "bonjour"},
		{"normalizes line endings", "a\r\nb\rc", "a\nb\nc"},
		{"keeps inner newlines and tabs", "ligne 1\n\tligne 2", "ligne 1\n\tligne 2"},
		{"drops control characters", "a\x00b\x07c", "abc"},
		{"keeps angle brackets", "Ecrivez a <claire@example.fr> si x<y", "Ecrivez a <claire@example.fr> si x<y"},
		{"keeps markup as text", "<em>Bonjour</em> &amp; Paul", "<em>Bonjour</em> &amp; Paul"},
		{"composes combining accents", "e\u0301te\u0301", "\u00e9t\u00e9"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Text(tt.input))
		})
	}
}

func TestText_NFCChangesRuneCount(t *testing.T) {
	t.Parallel()

	decomposed := "e\u0301"
	assert.Equal(t, 2, utf8.RuneCountInString(decomposed))
	assert.Equal(t, 1, utf8.RuneCountInString(sanitizer.Text(decomposed)))
}

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapses newlines", "Demande\r\nBcc: x@example.com", "Demande Bcc: x@example.com"},
		{"collapses runs of spaces", "Jean   \t Dupont", "Jean Dupont"},
		{"keeps angle brackets", "Devis <urgent>", "Devis <urgent>"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.Line(tt.input))
		})
	}
}
