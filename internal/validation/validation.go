// Package validation wraps go-playground/validator for the builder structs
// used to create listings and inquiries.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so errors line up with request bodies.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// enum accepts any string type that knows its own allowed values.
	if err := v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(interface{ IsValid() bool })
		return ok && e.IsValid()
	}); err != nil {
		panic(fmt.Sprintf("registering enum validation: %v", err))
	}

	return v
}

// FieldError describes one failed rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Error is returned when a struct fails validation.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Param != "" {
			parts = append(parts, fmt.Sprintf("%s (%s=%s)", f.Field, f.Rule, f.Param))
		} else {
			parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
		}
	}
	return "invalid " + strings.Join(parts, ", ")
}

// NewError builds an Error for a single field. Used for cross-field rules
// the tag language cannot express.
func NewError(field, rule string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Rule: rule}}}
}

// IsValidationError reports whether err is (or wraps) a validation Error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// Struct validates every field of s.
func Struct(s any) error {
	return convert(validate.Struct(s))
}

// Partial validates only the named Go struct fields of s.
func Partial(s any, fields ...string) error {
	return convert(validate.StructPartial(s, fields...))
}

func convert(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating: %w", err)
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
