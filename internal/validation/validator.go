package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"trivia-api/internal/domain"

	"github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "%s is required",
	"min":      "%s must be at least %s",
	"max":      "%s must be at most %s",
	"gt":       "%s must be greater than %s",
	"gte":      "%s must be greater than or equal to %s",
	"lt":       "%s must be less than %s",
	"lte":      "%s must be less than or equal to %s",
}

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct checks the `validate` tags of s and returns nil when s is valid.
func (v *Validator) ValidateStruct(s any) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{
			Field:   "",
			Code:    domain.CodeValidation,
			Message: err.Error(),
		}}
	}

	result := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		result = append(result, toValidationError(fe))
	}
	return result
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	code := domain.CodeInvalidFormat
	switch fe.Tag() {
	case "required":
		code = domain.CodeMissingField
	case "min", "max", "gt", "gte", "lt", "lte":
		code = domain.CodeOutOfRange
	}

	msg := fmt.Sprintf("%s has an invalid format", field)
	if tmpl, ok := messages[fe.Tag()]; ok {
		if strings.Count(tmpl, "%s") == 2 {
			msg = fmt.Sprintf(tmpl, field, fe.Param())
		} else {
			msg = fmt.Sprintf(tmpl, field)
		}
	}

	ve := domain.ValidationError{
		Field:   field,
		Code:    code,
		Message: msg,
	}
	if code != domain.CodeMissingField {
		ve.Value = fe.Value()
	}
	return ve
}
