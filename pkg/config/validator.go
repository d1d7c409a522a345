package config

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// commandNamePattern matches names usable as a command on the search path
var commandNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// RegisterCustomValidators registers custom validation functions
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("command_name", validateCommandName)
}

// validateCommandName validates a command line name
func validateCommandName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || len(name) > 64 {
		return false
	}
	return commandNamePattern.MatchString(name)
}
