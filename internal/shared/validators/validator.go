package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// TagRegexp accepts a string that compiles as a Go regular expression.
const TagRegexp = "regexp"

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New returns a validator that also knows the tags of this package.
func New() *Validate {
	validate := validator.New()
	// the tag name is a constant, registration cannot fail
	_ = validate.RegisterValidation(TagRegexp, isRegexp)
	return validate
}

func isRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}
