// Package validator wraps go-playground/validator with a shared instance and
// a uniform error format. Structs declare their rules with `validate` tags.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed heads the joined error returned by Validate when one or
// more rules are violated.
var ErrValidationFailed = errors.New("struct validation failed")

// validator is the shared instance, created on package load.
var validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())

// errStringFormat describes a single violated rule.
//
// Example: "'Config.RPCEndpoint': value '' does not meet the requirements for the 'required' validation"
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

// formatError turns validator field errors into ErrValidationFailed joined
// with one message per violated rule. Other errors are returned unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		errs = append(errs, fmt.Errorf(errStringFormat,
			validationErr.Namespace(),
			validationErr.Value(),
			validationErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks v against its validation tags. It returns nil when every
// rule holds; otherwise the error matches ErrValidationFailed via errors.Is.
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
