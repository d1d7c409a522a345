package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dagrkit/dagr/pkg/config"
	"github.com/dagrkit/dagr/pkg/logger"
)

// WhichCmd locates an executable the way tools launched by dagr are located.
func WhichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "which NAME",
		Short: "Locate an executable",
		Long: `Print the path of executable NAME. A path configured at --key
(default NAME.executable) is used as is. With --bin-dir-key the configured
directory is joined with NAME instead. Otherwise the search path is scanned.`,
		Args: cobra.ExactArgs(1),
		RunE: runWhich,
	}

	cmd.Flags().String("key", "", "Configuration key holding the executable path (default NAME.executable)")
	cmd.Flags().String("bin-dir-key", "", "Configuration key holding the directory that contains NAME")

	return cmd
}

func runWhich(cmd *cobra.Command, args []string) error {
	resolver := config.ResolverFromContext(cmd.Context())
	if resolver == nil {
		return fmt.Errorf("executable resolver not found in context")
	}
	name := args[0]
	key, err := cmd.Flags().GetString("key")
	if err != nil {
		return fmt.Errorf("failed to get key flag: %w", err)
	}
	binDirKey, err := cmd.Flags().GetString("bin-dir-key")
	if err != nil {
		return fmt.Errorf("failed to get bin-dir-key flag: %w", err)
	}

	var path config.Path
	if binDirKey != "" {
		path, err = resolver.ExecutableInBinDir(binDirKey, name)
	} else {
		if key == "" {
			key = name + ".executable"
		}
		path, err = resolver.Executable(key, name)
	}
	if err != nil {
		return err
	}
	logger.FromContext(cmd.Context()).Debug("resolved executable", "name", name, "path", path)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
