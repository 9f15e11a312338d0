package utils

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"taskboard/domain/dto"
	"taskboard/pkg/apperror"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// notblank rejects whitespace-only strings, which "required" accepts.
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	return validate
}

// ValidateStruct checks s against its validate tags. A failure comes back
// as an apperror Validation error naming the first offending field, with
// the full validator.ValidationErrors as its cause.
func ValidateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}
	first := validationErrs[0]
	return apperror.Validation(first.Field(), validationMessage(first)).WithCause(validationErrs)
}

// GetValidationErrors flattens validator errors into response details.
func GetValidationErrors(err error) []dto.ValidationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return []dto.ValidationError{{Field: appErr.Field, Message: appErr.Message}}
		}
		return []dto.ValidationError{{Message: err.Error()}}
	}

	out := make([]dto.ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, dto.ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
