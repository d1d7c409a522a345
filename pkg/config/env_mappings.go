package config

import (
	"reflect"
	"strings"
	"sync"
)

// EnvMapping represents a mapping between environment variable and config path
type EnvMapping struct {
	EnvVar     string
	ConfigPath string
}

var (
	cachedMappings []EnvMapping
	mappingsOnce   sync.Once
)

// EnvVarForKey returns the variable that overrides key when the environment
// is loaded with prefix, e.g. bwa-kit.dir becomes DAGR_BWA_KIT__DIR. It is
// the inverse of the transform applied by LoadStore.
func EnvVarForKey(prefix, key string) string {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	parts := strings.Split(key, ".")
	for i, part := range parts {
		parts[i] = strings.ToUpper(strings.ReplaceAll(part, "-", "_"))
	}
	return prefix + strings.Join(parts, "__")
}

// GenerateEnvMappings generates environment variable mappings from the
// Settings struct tags
func GenerateEnvMappings() []EnvMapping {
	mappingsOnce.Do(func() {
		cachedMappings = extractMappings(reflect.TypeOf(Settings{}), SettingsPrefix)
	})
	return cachedMappings
}

// extractMappings recursively extracts env mappings from struct fields
func extractMappings(t reflect.Type, prefix string) []EnvMapping {
	var mappings []EnvMapping
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if !field.IsExported() {
			continue
		}

		koanfTag := field.Tag.Get("koanf")
		if koanfTag == "" || koanfTag == "-" {
			continue
		}

		configPath := koanfTag
		if prefix != "" {
			configPath = prefix + "." + koanfTag
		}

		if field.Type.Kind() == reflect.Struct && field.Type.PkgPath() != "time" {
			mappings = append(mappings, extractMappings(field.Type, configPath)...)
			continue
		}
		mappings = append(mappings, EnvMapping{
			EnvVar:     EnvVarForKey(DefaultEnvPrefix, configPath),
			ConfigPath: configPath,
		})
	}
	return mappings
}

// GetEnvVarForConfigPath returns the environment variable for a known
// settings path, or an empty string.
func GetEnvVarForConfigPath(configPath string) string {
	for _, m := range GenerateEnvMappings() {
		if m.ConfigPath == configPath {
			return m.EnvVar
		}
	}
	return ""
}
