package apperror

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Init registers fieldName on gin's validator, so binding errors carry the
// wire name of the field for both JSON bodies and query strings.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName prefers the json tag, then the form tag used by query binding.
// An empty result makes the validator fall back to the Go field name.
func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		switch name {
		case "":
			continue
		case "-":
			return ""
		default:
			return name
		}
	}
	return ""
}

// recipient_phone -> Recipient Phone
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns the first binding failure into an AppError.
// Field names come from the tags registered in Init.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField)
		default:
			return InvalidField(humanReadableField)
		}
	}

	return ErrInvalidInput
}
