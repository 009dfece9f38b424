package devserver

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationError carries every failed field of a request body.
type ValidationError struct {
	Errors []FieldError
}

func (ve ValidationError) Error() string {
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// requestValidator adapts go-playground/validator to echo.Validator.
type requestValidator struct {
	validator *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &requestValidator{validator: v}
}

func (v *requestValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		out := ValidationError{Errors: make([]FieldError, len(validationErrors))}
		for i, fe := range validationErrors {
			out.Errors[i] = FieldError{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Message: msgForTag(fe.Tag(), fe.Param()),
			}
		}
		return out
	}
	return err
}

func msgForTag(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		return fmt.Sprintf("must not exceed %s", param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	default:
		return fmt.Sprintf("failed rule %s", tag)
	}
}

// jsonFieldName reports fields under their JSON names.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
