package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// report errors under the JSON field names clients send
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("notblank", validateNotBlank)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationDetails flattens validator errors into field -> message. Any
// other error is reported under "request".
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		details["request"] = err.Error()
		return details
	}

	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required", "notblank":
			details[fieldErr.Field()] = "is required"
		default:
			details[fieldErr.Field()] = "failed on " + fieldErr.Tag()
		}
	}

	return details
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
