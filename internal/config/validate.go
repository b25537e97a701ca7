package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/toyz/svcmaker/internal/models"
)

// expectations describes each validation tag in error messages
var expectations = map[string]string{
	"required":     "a value",
	"phpnamespace": "a PHP namespace",
	"indent":       "spaces or tabs",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report fields by their configuration key
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("phpnamespace", func(fl validator.FieldLevel) bool {
		return models.ValidateFQN(fl.Field().String()) == nil
	})
	v.RegisterValidation("indent", func(fl validator.FieldLevel) bool {
		return strings.Trim(fl.Field().String(), " \t") == ""
	})

	return v
}
