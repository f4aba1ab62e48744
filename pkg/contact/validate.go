package contact

import (
	"fmt"
	"strings"

	"github.com/glconseil/vitrine/pkg/validator"
)

// Message length bounds, in characters after normalization.
const (
	MessageMinLength = 50
	MessageMaxLength = 4000
	fieldMaxLength   = 200
	emailMaxLength   = 254
	phoneMaxLength   = 40
)

var fieldLabels = map[string]string{
	FieldFullName:     "Le nom",
	FieldEmail:        "L'adresse e-mail",
	FieldPhone:        "Le téléphone",
	FieldOrganization: "L'organisation",
	FieldRole:         "La fonction",
	FieldSubject:      "L'objet",
	FieldMessage:      "Le message",
	FieldSource:       "La provenance",
}

// Validate checks the submission and returns validator.ValidationErrors with
// French messages, or nil.
func (s Submission) Validate() error {
	err := validator.Apply(
		validator.RequiredString(FieldFullName, s.FullName),
		validator.MaxLenString(FieldFullName, s.FullName, fieldMaxLength),
		validator.RequiredString(FieldEmail, s.Email),
		validator.Email(FieldEmail, s.Email),
		validator.MaxLenString(FieldEmail, s.Email, emailMaxLength),
		validator.MaxLenString(FieldPhone, s.Phone, phoneMaxLength),
		validator.MaxLenString(FieldOrganization, s.Organization, fieldMaxLength),
		validator.MaxLenString(FieldRole, s.Role, fieldMaxLength),
		validator.RequiredString(FieldSubject, s.Subject),
		validator.MaxLenString(FieldSubject, s.Subject, fieldMaxLength),
		messageLength(s.Message),
		validator.MaxLenString(FieldMessage, s.Message, MessageMaxLength),
		validator.MaxLenString(FieldSource, s.Source, fieldMaxLength),
		validator.Accepted(FieldConsent, s.Consent),
	)
	if errs := validator.ExtractValidationErrors(err); errs != nil {
		errs.Translate(translate)
		return errs
	}
	return err
}

// messageLength treats an empty message as too short so the user sees the
// minimum length rather than a bare "required".
func messageLength(msg string) validator.Rule {
	r := validator.MinLenString(FieldMessage, msg, MessageMinLength)
	if msg == "" {
		r.Check = func() bool { return false }
	}
	return r
}

// ErrorMessage joins every validation message into one sentence sequence.
// Each field contributes at most its first message.
func ErrorMessage(err error) string {
	errs := validator.ExtractValidationErrors(err)
	if len(errs) == 0 {
		return ""
	}

	seen := make(map[string]bool, len(errs))
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if seen[e.Field] {
			continue
		}
		seen[e.Field] = true
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, " ")
}

func translate(key string, values map[string]any) string {
	field, _ := values["field"].(string)

	switch key {
	case validator.KeyRequired:
		switch field {
		case FieldFullName:
			return "Merci d'indiquer votre nom."
		case FieldEmail:
			return "Merci d'indiquer votre adresse e-mail."
		case FieldSubject:
			return "Merci de préciser l'objet de votre demande."
		}
		return fmt.Sprintf("%s est obligatoire.", label(field))
	case validator.KeyEmail:
		return "Merci d'indiquer une adresse e-mail valide."
	case validator.KeyMinLength:
		return fmt.Sprintf("Votre message doit contenir au moins %v caractères.", values["min"])
	case validator.KeyMaxLength:
		if field == FieldMessage {
			return fmt.Sprintf("Votre message ne doit pas dépasser %v caractères.", values["max"])
		}
		return fmt.Sprintf("%s ne doit pas dépasser %v caractères.", label(field), values["max"])
	case validator.KeyAccepted:
		return "Merci d'accepter que vos données soient utilisées pour vous recontacter."
	}
	return "Le formulaire contient une erreur."
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return "Ce champ"
}
