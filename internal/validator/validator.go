package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one failed field rule.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Rule    string      `json:"rule,omitempty"`
	Value   interface{} `json:"value,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator wraps go-playground struct validation for request DTOs.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New()}
}

// ValidateStruct validates a request DTO against its validate tags. Returns
// nil when everything passes.
func (v *Validator) ValidateStruct(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return ToValidationErrors(err)
}

// ToValidationErrors converts go-playground errors into the portal's shape.
func ToValidationErrors(err error) ValidationErrors {
	var errors ValidationErrors
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errors = append(errors, ValidationError{
				Field:   fe.Field(),
				Message: messageFor(fe),
				Rule:    fe.Tag(),
				Value:   fe.Value(),
			})
		}
		return errors
	}
	return ValidationErrors{{Field: "", Message: err.Error()}}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}
