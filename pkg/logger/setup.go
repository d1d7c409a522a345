package logger

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Option adjusts the configuration built by SetupLogger.
type Option func(*Config)

// WithPrefix prints prefix before every message.
func WithPrefix(prefix string) Option {
	return func(c *Config) { c.Prefix = prefix }
}

// WithoutColor disables ANSI styling.
func WithoutColor() Option {
	return func(c *Config) { c.NoColor = true }
}

// WithOutput sends log output to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.Output = w }
}

// SetupLogger replaces the default logger. Unknown levels fall back to info.
func SetupLogger(logLevel string, logJSON, logSource bool, opts ...Option) {
	level := LogLevel(logLevel)
	switch level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, DisabledLevel:
	default:
		level = InfoLevel
	}

	cfg := &Config{
		Level:      level,
		JSON:       logJSON,
		AddSource:  logSource,
		TimeFormat: "15:04:05",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	Init(cfg)
}

func GetLoggerConfig(cmd *cobra.Command) (string, bool, bool, error) {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-json flag: %w", err)
	}

	logSource, err := cmd.Flags().GetBool("log-source")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-source flag: %w", err)
	}

	return logLevel, logJSON, logSource, nil
}
