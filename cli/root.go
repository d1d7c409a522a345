package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ConfigEnvVar names the configuration files used when --config is not given.
const ConfigEnvVar = "DAGR_CONFIG"

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dagr",
		Short: "Typed configuration lookup and executable discovery",
		Long: `dagr reads layered YAML configuration, resolves typed values and
locates external executables through configured overrides or the search path.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return writeRequestReport(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringSlice("config", defaultConfigFiles(), "Configuration file, may be repeated (defaults to $"+ConfigEnvVar+")")
	flags.String("env-file", "", "Path to environment file loaded before configuration")
	flags.String("log-level", "", "Log level (debug, info, warn, error, disabled), overrides dagr.log-level")
	flags.Bool("log-json", false, "Output logs in JSON format")
	flags.Bool("log-source", false, "Include source file and line in logs")
	flags.String("report", "", "Print the requested configuration keys after the command (table, json, yaml)")

	root.AddCommand(
		GetCmd(),
		WhichCmd(),
		SearchPathCmd(),
		KeysCmd(),
		ShowCmd(),
	)

	return root
}

func defaultConfigFiles() []string {
	files := make([]string, 0)
	for _, file := range filepath.SplitList(os.Getenv(ConfigEnvVar)) {
		if file != "" {
			files = append(files, file)
		}
	}
	return files
}
