package validator

import (
	"strings"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
)

// Translation keys produced by the built-in rules.
const (
	KeyRequired  = "validation.required"
	KeyMinLength = "validation.min_length"
	KeyMaxLength = "validation.max_length"
	KeyEmail     = "validation.email"
	KeyAccepted  = "validation.accepted"
)

var engine = playground.New()

// Rule is a single check bound to a field.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply evaluates every rule and returns ValidationErrors for the ones that
// fail, in the order given. Returns nil when all rules pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if r.Check == nil || r.Check() {
			continue
		}
		errs = append(errs, r.Error)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func newRule(field, key, message string, check func() bool, values map[string]any) Rule {
	if values == nil {
		values = make(map[string]any, 1)
	}
	values["field"] = field
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}

// RequiredString fails when value is empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return newRule(field, KeyRequired, "is required", func() bool {
		return strings.TrimSpace(value) != ""
	}, nil)
}

// MinLenString fails when value has fewer than minLen characters.
// Length is counted in runes. Empty values pass; combine with RequiredString.
func MinLenString(field, value string, minLen int) Rule {
	return newRule(field, KeyMinLength, "is too short", func() bool {
		return value == "" || utf8.RuneCountInString(value) >= minLen
	}, map[string]any{"min": minLen})
}

// MaxLenString fails when value has more than maxLen characters.
// Length is counted in runes.
func MaxLenString(field, value string, maxLen int) Rule {
	return newRule(field, KeyMaxLength, "is too long", func() bool {
		return utf8.RuneCountInString(value) <= maxLen
	}, map[string]any{"max": maxLen})
}

// Email fails when value is not a deliverable-looking address: it must pass
// RFC 5322 syntax checks, have a non-empty local part, and a domain that
// contains a dot. Empty values pass; combine with RequiredString.
func Email(field, value string) Rule {
	return newRule(field, KeyEmail, "is not a valid email address", func() bool {
		if value == "" {
			return true
		}
		return IsEmail(value)
	}, nil)
}

// Accepted fails unless value is true (checkboxes such as consent).
func Accepted(field string, value bool) Rule {
	return newRule(field, KeyAccepted, "must be accepted", func() bool {
		return value
	}, nil)
}

// IsEmail reports whether s looks like a usable email address.
func IsEmail(s string) bool {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return engine.Var(s, "email") == nil
}
