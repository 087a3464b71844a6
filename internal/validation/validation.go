// Package validation applies go-playground/validator rules to request bodies
// and reports failures as huma error details, one per field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-playground/validator/v10"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so errors line up with the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("bcryptsize", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return v
}

// Struct validates v and returns one *huma.ErrorDetail per failing field,
// located under prefix (typically "body").
func Struct(prefix *huma.PathBuffer, v any) []error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []error{&huma.ErrorDetail{Location: prefix.String(), Message: err.Error()}}
	}

	// Locations are built from a copy of the prefix: dive fields such as
	// product_id[1] would not pop cleanly off the shared buffer.
	base := prefix.String()
	details := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		location := fe.Field()
		if base != "" {
			location = base + "." + location
		}
		details = append(details, &huma.ErrorDetail{
			Location: location,
			Message:  message(fe),
			Value:    fe.Value(),
		})
	}
	return details
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "bcryptsize":
		return fmt.Sprintf("must not exceed %d bytes", MaxPasswordBytes)
	case "datetime":
		return fmt.Sprintf("must be a date in the format %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		}
		return "failed " + fe.Tag()
	}
}
