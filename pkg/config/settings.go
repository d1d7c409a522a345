package config

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
)

// SettingsPrefix is the configuration section Settings is decoded from.
const SettingsPrefix = "dagr"

// Settings is the decoded view of the dagr section used to set up a run.
type Settings struct {
	CommandLineName string `koanf:"command-line-name" validate:"required,command_name"`
	ColorStatus     bool   `koanf:"color-status"`
	LogLevel        string `koanf:"log-level"         validate:"oneof=debug info warn error disabled"`
	LogJSON         bool   `koanf:"log-json"`
}

// DefaultSettings returns the values used for settings a store leaves unset.
func DefaultSettings() *Settings {
	return &Settings{
		CommandLineName: "dagr",
		LogLevel:        "info",
	}
}

// LoadSettings decodes and validates the dagr section of store.
func LoadSettings(store *KoanfStore) (*Settings, error) {
	settings := &Settings{}
	if store.HasPath(SettingsPrefix) {
		if err := store.Decode(SettingsPrefix, settings); err != nil {
			return nil, err
		}
	}
	if err := mergo.Merge(settings, DefaultSettings()); err != nil {
		return nil, fmt.Errorf("failed to apply default settings: %w", err)
	}
	v := validator.New()
	if err := RegisterCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	if err := v.Struct(settings); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return settings, nil
}
