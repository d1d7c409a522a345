package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dagrkit/dagr/pkg/config"
)

// SearchPathCmd prints the configured search path, one directory per line.
func SearchPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search-path",
		Short: "Print the directories scanned for executables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver := config.ResolverFromContext(cmd.Context())
			if resolver == nil {
				return fmt.Errorf("executable resolver not found in context")
			}
			dirs, err := resolver.SearchPath()
			if err != nil {
				return err
			}
			for _, dir := range dirs {
				fmt.Fprintln(cmd.OutOrStdout(), dir)
			}
			return nil
		},
	}
}
