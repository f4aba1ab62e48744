// Package validator provides declarative, translatable validation rules.
//
// Rules are built per field and evaluated together by Apply, which returns
// ValidationErrors listing every failure in rule order:
//
//	err := validator.Apply(
//	    validator.RequiredString("email", form.Email),
//	    validator.Email("email", form.Email),
//	    validator.MinLenString("message", form.Message, 50),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//	    ve.Translate(messages.Translate)
//	}
//
// Each error carries a translation key and placeholder values so callers can
// replace the default English message with localized copy. Email syntax is
// delegated to go-playground/validator.
package validator
