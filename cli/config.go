package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dagrkit/dagr/pkg/config"
	"github.com/dagrkit/dagr/pkg/logger"
)

// SetupGlobalConfig loads the configuration store and settings, configures
// logging and injects the accessor and resolver into the command context.
// One RequestLog is created here and shared for the whole run.
func SetupGlobalConfig(cmd *cobra.Command) error {
	if _, err := loadEnvFile(cmd); err != nil {
		return err
	}
	if err := validateReportFormat(cmd); err != nil {
		return err
	}
	files, err := cmd.Flags().GetStringSlice("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := config.LoadStore(ctx, config.StoreOptions{Files: files})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	settings, err := config.LoadSettings(store)
	if err != nil {
		return err
	}
	if err := setupLogger(cmd, settings); err != nil {
		return err
	}
	log := logger.GetDefault()
	log.Debug("configuration loaded", "files", files, "keys", len(store.Keys()))

	requests := config.NewRequestLog()
	accessor := config.NewAccessor(store, requests, config.WithLogger(log))
	resolver := config.NewResolver(accessor)

	ctx = logger.ContextWithLogger(ctx, log)
	ctx = config.ContextWithAccessor(ctx, accessor)
	ctx = config.ContextWithResolver(ctx, resolver)
	cmd.SetContext(ctx)
	return nil
}

// setupLogger applies the logging flags, falling back to the dagr settings
// for flags that were not given.
func setupLogger(cmd *cobra.Command, settings *config.Settings) error {
	level, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") {
		level = settings.LogLevel
	}
	if !cmd.Flags().Changed("log-json") {
		logJSON = settings.LogJSON
	}
	opts := []logger.Option{
		logger.WithPrefix(settings.CommandLineName),
		logger.WithOutput(cmd.ErrOrStderr()),
	}
	if !colorEnabled(settings) {
		opts = append(opts, logger.WithoutColor())
	}
	logger.SetupLogger(level, logJSON, logSource, opts...)
	return nil
}

func validateReportFormat(cmd *cobra.Command) error {
	format, err := cmd.Flags().GetString("report")
	if err != nil {
		return fmt.Errorf("failed to get report flag: %w", err)
	}
	switch format {
	case "", config.ReportTable, config.ReportJSON, config.ReportYAML:
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func writeRequestReport(cmd *cobra.Command) error {
	format, err := cmd.Flags().GetString("report")
	if err != nil {
		return fmt.Errorf("failed to get report flag: %w", err)
	}
	if format == "" {
		return nil
	}
	accessor, err := accessorFrom(cmd)
	if err != nil {
		return err
	}
	return config.WriteRequestReport(cmd.OutOrStdout(), accessor.Requests(), accessor.Store(), format)
}

func accessorFrom(cmd *cobra.Command) (*config.Accessor, error) {
	accessor := config.AccessorFromContext(cmd.Context())
	if accessor == nil {
		return nil, fmt.Errorf("configuration accessor not found in context")
	}
	return accessor, nil
}
