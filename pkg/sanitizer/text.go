package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Text cleans multi-line plain-text input. Line endings become "\n",
// control characters other than newline and tab are dropped, the result is
// NFC-normalized and surrounding whitespace is trimmed.
//
// Markup is left alone: "<" and ">" are ordinary characters in a message,
// and output is escaped where it is rendered.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = dropControl(newlines.Replace(s))
	return strings.TrimSpace(norm.NFC.String(s))
}

func dropControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Line cleans single-line user input such as names or subjects.
// It applies Text and then collapses every whitespace run, newlines
// included, into one space. The result is safe to place in a mail header.
func Line(s string) string {
	return strings.Join(strings.Fields(Text(s)), " ")
}
