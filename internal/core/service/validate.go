package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/retailops/store-console/internal/core/domain"
)

var phonePattern = regexp.MustCompile(`^[0-9]{3}-[0-9]{3}-[0-9]{4}$`)

// newValidator builds the validator shared by the services, with the custom
// usphone rule for the XXX-XXX-XXXX phone format.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("usphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// checkInput validates a tagged input struct and converts the first failure
// into a field-tagged domain error.
func checkInput(v *validator.Validate, input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fieldError(ve[0])
	}
	return err
}

// fieldError converts a single ValidationError into a *domain.ValidationError
// with a human-readable message.
func fieldError(fe validator.FieldError) *domain.ValidationError {
	field := fieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(field, field+" cannot be empty")
	case "email":
		return domain.NewValidationError(field, "invalid email format")
	case "usphone":
		return domain.NewValidationError(field, "invalid phone format (XXX-XXX-XXXX required)")
	case "gt":
		return domain.NewValidationError(field, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
	case "gte":
		return domain.NewValidationError(field, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
	default:
		return domain.NewValidationError(field, fmt.Sprintf("%s failed validation (%s)", field, fe.Tag()))
	}
}

// fieldName renders a Go field name as the label shown to the user,
// e.g. CustomerID -> "customer id".
func fieldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := strings.ToLower(b.String())
	return strings.ReplaceAll(out, "i d", "id")
}
