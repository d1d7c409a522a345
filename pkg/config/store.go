package config

import "time"

// Store is an immutable, already loaded hierarchical key-value source.
// Keys are dotted paths. Getters return errors wrapping ErrMissingKey when
// the key is absent and ErrTypeMismatch when the value cannot be converted.
type Store interface {
	HasPath(key string) bool
	String(key string) (string, error)
	Bool(key string) (bool, error)
	Int32(key string) (int32, error)
	Int64(key string) (int64, error)
	Float64(key string) (float64, error)
	Duration(key string) (time.Duration, error)
	// Text returns the scalar at key in its textual form, for values that
	// need parsing beyond the native getters.
	Text(key string) (string, error)
}
