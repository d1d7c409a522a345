package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dagrkit/dagr/pkg/config"
	"github.com/dagrkit/dagr/pkg/logger"
)

// GetCmd reads one configuration value as a typed value.
func GetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Read a configuration value as a typed value",
		Long: `Read KEY from the configuration and print it after coercing it to --type.
Without --default a missing key is an error.`,
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}

	cmd.Flags().StringP("type", "t", config.KindString.String(),
		"Value type ("+strings.Join(config.KindNames(), ", ")+")")
	cmd.Flags().String("default", "", "Value printed when KEY is absent")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	accessor, err := accessorFrom(cmd)
	if err != nil {
		return err
	}
	typeName, err := cmd.Flags().GetString("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}
	kind, err := config.ParseKind(typeName)
	if err != nil {
		return err
	}
	key := args[0]
	logger.FromContext(cmd.Context()).Debug("reading configuration value", "key", key, "type", kind)

	if !cmd.Flags().Changed("default") {
		value, err := accessor.Lookup(key, kind)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value.String())
		return nil
	}

	value, ok, err := accessor.LookupOptional(key, kind)
	if err != nil {
		return err
	}
	if !ok {
		def, err := cmd.Flags().GetString("default")
		if err != nil {
			return fmt.Errorf("failed to get default flag: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), def)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), value.String())
	return nil
}
