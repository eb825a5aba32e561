// Package security provides input validation and sanitization for API requests
package security

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/alchemorsel/menugen/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// MaxWeekLabelLength bounds the free-form week label
const MaxWeekLabelLength = 64

// ValidationService provides input validation and sanitization
type ValidationService struct {
	logger    *zap.Logger
	validator *validator.Validate
}

// NewValidationService creates a new validation service
func NewValidationService(logger *zap.Logger) *ValidationService {
	validate := validator.New()

	// Report json field names rather than Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(validate, "week_label", validateWeekLabel)

	return &ValidationService{
		logger:    logger.Named("validation"),
		validator: validate,
	}
}

// mustRegister panics when a custom rule cannot be registered
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// SanitizeWeekLabel trims the label and collapses internal whitespace
func (v *ValidationService) SanitizeWeekLabel(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// ValidateStruct validates a struct using the validation rules. Failures
// are returned as a VALIDATION_FAILED *errors.AppError listing each field.
func (v *ValidationService) ValidateStruct(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		return errors.NewValidationError(err.Error())
	}

	fields := make([]errors.ValidationError, 0, len(validationErrs))
	for _, e := range validationErrs {
		fields = append(fields, errors.ValidationError{
			Field:   e.Field(),
			Value:   e.Value(),
			Tag:     e.Tag(),
			Message: validationMessage(e),
		})
	}

	v.logger.Debug("Request validation failed", zap.Int("fields", len(fields)))
	return errors.NewValidationErrors(fields)
}

func validationMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "week_label":
		return fmt.Sprintf("%s must contain printable characters only", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// validateWeekLabel rejects control characters and blank labels
func validateWeekLabel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if strings.TrimSpace(value) == "" {
		return false
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
