package handlers

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance, reused across all handlers.
var validate = newValidator()

var phonePattern = regexp.MustCompile(`^\d{8,10}$`)

func newValidator() *validator.Validate {
	v := validator.New()

	// phone: digits only, 8-10 characters
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// ValidateRequest validates a request struct and returns the first failure
// as a user-facing message.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
		fe := ve[0]
		return fmt.Errorf("validation failed: %s: %s", fe.Field(), formatValidationError(fe))
	}
	return fmt.Errorf("validation failed: %w", err)
}

// formatValidationError converts a validator FieldError to a user-friendly
// message.
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must have a minimum of %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must have a maximum of %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "phone":
		return "must be 8 to 10 digits"
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
