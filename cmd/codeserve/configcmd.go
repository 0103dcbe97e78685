package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/codeserve/pkg/config"
	"github.com/spf13/cobra"
)

var rebuildConfig bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&rebuildConfig, "rebuild", false, "Overwrite the config file with defaults")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active config, or rebuild it with defaults",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if rebuildConfig {
			path, err := config.RebuildConfigFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to rebuild config: %w", err)
			}
			fmt.Fprintf(out, "Wrote default config to %s\n", config.GetActiveConfigPath(path))
			return nil
		}

		fmt.Fprintf(out, "# %s\n", config.GetActiveConfigPath(activePath))
		return toml.NewEncoder(out).Encode(appConfig)
	},
}
