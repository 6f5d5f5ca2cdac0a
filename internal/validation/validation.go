// Package validation wraps go-playground/validator so every handler reports
// input problems as the same Validation error kind with human-readable
// messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates s against its validate tags and converts any failures
// into a single Validation error carrying per-field messages as details.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierror.Validation("Invalid input data", nil)
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, message(fe))
	}
	return apierror.Validation(details[0], details)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
