// Package sanitizer cleans untrusted input.
//
// StripHTML and SanitizeHTML wrap bluemonday policies for markup headed to
// a mail body. Text and Line prepare plain-text form values: Unicode
// normalized to NFC and control characters dropped, markup kept as typed.
package sanitizer
