package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingKey is returned when a mandatory lookup finds no value.
	ErrMissingKey = errors.New("configuration key not found")
	// ErrTypeMismatch is returned when a stored value cannot be coerced to the requested kind.
	ErrTypeMismatch = errors.New("configuration value has the wrong type")
	// ErrUnsupportedType is returned when a caller asks for a kind outside the supported set.
	ErrUnsupportedType = errors.New("unsupported configuration type")
	// ErrExecutableNotFound is returned when neither an override nor the search path yields an executable.
	ErrExecutableNotFound = errors.New("executable not found")
)

// LookupError describes a failed typed lookup of a single key.
type LookupError struct {
	Key  string
	Kind Kind
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("failed to read %s from configuration key %q: %v", e.Kind, e.Key, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// ExecutableNotFoundError names both the override key that was checked and
// the executable that was searched for.
type ExecutableNotFoundError struct {
	Key      string
	Name     string
	Searched []Path
}

func (e *ExecutableNotFoundError) Error() string {
	dirs := make([]string, len(e.Searched))
	for i, dir := range e.Searched {
		dirs[i] = string(dir)
	}
	return fmt.Sprintf(
		"%s: %q is not configured at key %q and was not found on the search path [%s]",
		ErrExecutableNotFound, e.Name, e.Key, strings.Join(dirs, ", "),
	)
}

func (e *ExecutableNotFoundError) Is(target error) bool {
	return target == ErrExecutableNotFound
}

func missingKey(key string) error {
	return fmt.Errorf("%w: %q", ErrMissingKey, key)
}

func typeMismatch(key string, value any, want string) error {
	return fmt.Errorf("%w: value %v (%T) at %q is not a valid %s", ErrTypeMismatch, value, value, key, want)
}
