package printing

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/erp/suratjalan/internal/domain/shared"
)

// CodeValidation is the domain error code for a request failing its binding rules
const CodeValidation = "VALIDATION_ERROR"

var (
	validatorOnce sync.Once
	validate      *validator.Validate
)

// requestValidator checks the same `binding` tags gin checks, so requests
// read from files get the rules HTTP requests get.
func requestValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateRequest checks req against its binding rules
func ValidateRequest(req *DocumentRequest) error {
	if req == nil {
		return shared.NewDomainError(CodeValidation, "Request body is empty")
	}
	err := requestValidator().Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	violations := make([]shared.FieldViolation, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, shared.FieldViolation{
			Field:   fieldPath(e.Namespace()),
			Message: ValidationMessage(e),
		})
	}
	return shared.NewValidationError(CodeValidation, "Request validation failed", violations)
}

// fieldPath drops the struct name from a namespace like "DocumentRequest.items[0].no"
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// ValidationMessage returns a human-readable validation message
func ValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	default:
		return "Invalid value"
	}
}
