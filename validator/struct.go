// Package validator checks task input before it is sent to the persistence endpoint.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
	"github.com/ncobase/tasklist/ecode"
	"github.com/ncobase/tasklist/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		return types.Color(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("title", func(fl validator.FieldLevel) bool {
		return titleLength(fl.Field().String()) >= MinTitleLength
	})
}

// titleLength counts UTF-16 code units, so "😀a" has length 3 as it does in a browser form.
func titleLength(s string) int {
	n := 0
	for _, r := range s {
		if l := len(utf16.Encode([]rune{r})); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// errorMessages maps validation tags to messages. The first %s is the field label,
// the second, when present, the tag parameter.
var errorMessages = map[string]string{
	"required": "%s is required",
	"min":      "%s must be at least %s characters long",
	"max":      "%s must be no longer than %s characters",
	"color":    "%s must be one of %s",
	"title":    "%s must be at least %d characters long",
}

// parseMessage constructs a friendly error message based on the validation tag.
func parseMessage(label string, e validator.FieldError) string {
	if msg, exists := errorMessages[e.Tag()]; exists {
		switch e.Tag() {
		case "color":
			return fmt.Sprintf(msg, label, types.ColorList())
		case "title":
			return fmt.Sprintf(msg, label, MinTitleLength)
		}
		placeholderCount := strings.Count(msg, "%s")
		if placeholderCount == 1 {
			return fmt.Sprintf(msg, label)
		} else if placeholderCount == 2 {
			return fmt.Sprintf(msg, label, e.Param())
		}
	}
	return fmt.Sprintf("%s is invalid: %s", label, e.Tag())
}

// fieldName returns the JSON name of a struct field.
func fieldName(structType reflect.Type, e validator.FieldError) string {
	field, _ := structType.FieldByName(e.StructField())
	jsonTag := field.Tag.Get("json")
	if jsonTag == "" {
		return e.StructField()
	}
	return strings.Split(jsonTag, ",")[0]
}

// label capitalises a JSON field name for use in messages.
func label(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// ValidateStruct validates a struct and returns a map of JSON field names to friendly error messages.
func ValidateStruct(s any) map[string]string {
	validationErrors := make(map[string]string)
	for _, e := range validateFields(s) {
		validationErrors[e.Field] = e.Message
	}
	return validationErrors
}

// Validate returns the first failing field of s in declaration order, or nil.
func Validate(s any) error {
	if errs := validateFields(s); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func validateFields(s any) []*ecode.ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []*ecode.ValidationError{ecode.NewValidationError("", err.Error())}
	}

	structType := reflect.TypeOf(s)
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	out := make([]*ecode.ValidationError, 0, len(validationErrs))
	for _, e := range validationErrs {
		name := fieldName(structType, e)
		out = append(out, ecode.NewValidationError(name, parseMessage(label(name), e)))
	}
	return out
}
