package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/campushq/studentadmin/internal/app/models/dto"
)

// BindingErrorDetail turns a gin binding error into the standard error
// detail, expanding validator failures into per-field messages.
func BindingErrorDetail(err error) *dto.ErrorDetail {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, formatFieldError(fe))
		}
		return detail.WithDetails(fields)
	}

	return detail.WithDetails(err.Error())
}

// formatFieldError creates a human-readable message for one field failure
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email address"
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
