package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type yamlRenderer interface {
	YAML() ([]byte, error)
}

// ShowCmd prints the merged configuration after substitution. Showing does
// not count as a request.
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accessor, err := accessorFrom(cmd)
			if err != nil {
				return err
			}
			renderer, ok := accessor.Store().(yamlRenderer)
			if !ok {
				return fmt.Errorf("configuration store cannot be rendered")
			}
			out, err := renderer.YAML()
			if err != nil {
				return fmt.Errorf("failed to render configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
