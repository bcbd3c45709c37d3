package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors are the
// JSON names clients send.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct validates v and returns the formatted errors, nil when v
// is valid.
func ValidateStruct(v any) []ValidationError {
	return FormatValidationErrors(Validator().Struct(v))
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

// FormatValidationErrors converts validator.ValidationErrors into a slice of ValidationError
func FormatValidationErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]ValidationError, len(ve))
	for i, fe := range ve {
		out[i] = ValidationError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
		}
		if fe.Value() != nil && fe.Kind() != reflect.Ptr && fe.Kind() != reflect.Slice && fe.Kind() != reflect.Struct {
			out[i].Value = fmt.Sprintf("%v", fe.Value())
		}
		switch fe.Tag() {
		case "required":
			out[i].Message = fmt.Sprintf("%s is required", fe.Field())
		case "required_without":
			out[i].Message = fmt.Sprintf("%s is required when %s is not provided", fe.Field(), jsonName(fe.Param()))
		case "min":
			if fe.Kind() == reflect.Slice {
				out[i].Message = fmt.Sprintf("%s must contain at least %s item(s)", fe.Field(), fe.Param())
			} else {
				out[i].Message = fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
			}
		case "len":
			out[i].Message = fmt.Sprintf("%s must be exactly %s characters long", fe.Field(), fe.Param())
		case "numeric":
			out[i].Message = fmt.Sprintf("%s must contain digits only", fe.Field())
		case "oneof":
			out[i].Message = fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
		case "datetime":
			out[i].Message = fmt.Sprintf("%s must be a date in %s format", fe.Field(), "YYYY-MM-DD")
		case "latitude", "longitude":
			out[i].Message = fmt.Sprintf("%s must be a valid %s", fe.Field(), fe.Tag())
		case "gte", "gt":
			out[i].Message = fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
		case "url":
			out[i].Message = fmt.Sprintf("%s must be a valid URL", fe.Field())
		default:
			out[i].Message = fmt.Sprintf("Validation failed on field '%s' for tag '%s'", fe.Field(), fe.Tag())
		}
	}
	return out
}

// jsonName lowercases the first rune of a Go field name so messages use
// the names clients send (UserID -> userID is close enough for humans).
func jsonName(field string) string {
	if field == "" {
		return field
	}
	if strings.HasSuffix(field, "ID") {
		field = strings.TrimSuffix(field, "ID") + "Id"
	}
	return strings.ToLower(field[:1]) + field[1:]
}
