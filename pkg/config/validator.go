package config

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// sourceNamePattern matches source names such as "uap-core" or "matomo".
var sourceNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("source_name", validateSourceName)
}

func validateSourceName(fl validator.FieldLevel) bool {
	return sourceNamePattern.MatchString(fl.Field().String())
}
