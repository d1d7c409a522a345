package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dagrkit/dagr/pkg/config"
)

type keyLister interface {
	Keys() []string
}

// KeysCmd lists every configuration key. Listing does not count as a request.
func KeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List every configuration key",
		Args:  cobra.NoArgs,
		RunE:  runKeys,
	}
	cmd.Flags().String("prefix", "", "Only list keys starting with prefix")
	cmd.Flags().Bool("env", false, "Show the environment variable that overrides each key and whether dagr reads it as a setting")
	return cmd
}

func runKeys(cmd *cobra.Command, _ []string) error {
	accessor, err := accessorFrom(cmd)
	if err != nil {
		return err
	}
	lister, ok := accessor.Store().(keyLister)
	if !ok {
		return fmt.Errorf("configuration store cannot list keys")
	}
	prefix, err := cmd.Flags().GetString("prefix")
	if err != nil {
		return fmt.Errorf("failed to get prefix flag: %w", err)
	}
	showEnv, err := cmd.Flags().GetBool("env")
	if err != nil {
		return fmt.Errorf("failed to get env flag: %w", err)
	}

	keys := make([]string, 0)
	for _, key := range lister.Keys() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	if !showEnv {
		for _, key := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), key)
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tENVIRONMENT VARIABLE\tSETTING")
	fmt.Fprintln(w, "---\t--------------------\t-------")
	for _, key := range keys {
		env, setting := config.GetEnvVarForConfigPath(key), "yes"
		if env == "" {
			env, setting = config.EnvVarForKey(config.DefaultEnvPrefix, key), "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, env, setting)
	}
	return w.Flush()
}
