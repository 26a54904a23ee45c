package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml keys rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError is one failed constraint, keyed by its dotted yaml path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError holds every constraint that failed.
type ValidationError struct {
	Errors []FieldError
}

func (v *ValidationError) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validate checks required fields and enum constraints on cfg.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, e := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fieldPath(e.Namespace()),
			Message: formatMessage(e),
		})
	}
	return out
}

// fieldPath drops the root type name: "Config.device.host" -> "device.host".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func formatMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s (got %q)", e.Param(), e.Value())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "hostname_rfc1123|hostname_port|ip":
		return fmt.Sprintf("%q is not a valid host", e.Value())
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
