package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrUsage marks invocation errors that stem from how the command was
// invoked rather than from the filesystem or the engine.
var ErrUsage = errors.New("invalid usage")

//nolint:gochecknoglobals
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// newValidator builds the validator with the custom cross-field rules
// registered.
func newValidator() *validator.Validate {
	v := validator.New()

	// "exclusive" fails when both the tagged field and the named other
	// field carry non-empty string values.
	_ = v.RegisterValidation("exclusive", validateExclusive)

	return v
}

// validateStruct runs the tag-based validation rules over cfg.
func validateStruct(cfg *Config) error {
	validateOnce.Do(func() {
		validate = newValidator()
	})

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %s", ErrUsage, describeFieldError(fieldErrs[0]))
		}

		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return nil
}

// describeFieldError renders a single validation failure for the user.
func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "exclusive":
		return fmt.Sprintf("%s and %s cannot both be specified", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// validateExclusive checks that two string fields are not both set.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && otherField.Kind() == reflect.String {
		return !(field.String() != "" && otherField.String() != "")
	}

	return true
}
