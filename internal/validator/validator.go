package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired       = "is required"
	ErrMinLength      = "must be at least %s characters long"
	ErrMaxLength      = "must be at most %s characters long"
	ErrMinItems       = "must contain at least %s items"
	ErrMaxItems       = "must contain at most %s items"
	ErrMinValue       = "must be greater than or equal to %s"
	ErrMaxValue       = "must be less than or equal to %s"
	ErrUnique         = "must not contain duplicate values"
	ErrUUID           = "must be a valid UUID"
	ErrDefaultInvalid = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterTagNameFunc(jsonFieldName)

	return validator
}

// jsonFieldName reports fields by their JSON name so messages match the
// request body the client sent.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return boundMessage(err, ErrMinItems, ErrMinLength, ErrMinValue)
	case "max":
		return boundMessage(err, ErrMaxItems, ErrMaxLength, ErrMaxValue)
	case "unique":
		return ErrUnique
	case "uuid", "uuid4":
		return ErrUUID
	default:
		return ErrDefaultInvalid
	}
}

func boundMessage(err validator.FieldError, items, length, value string) string {
	switch err.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf(items, err.Param())
	case reflect.String:
		return fmt.Sprintf(length, err.Param())
	default:
		return fmt.Sprintf(value, err.Param())
	}
}
