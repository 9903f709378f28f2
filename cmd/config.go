package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/arcanaland/ccgcatalog/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ccgcatalog configuration",
	Long:  `Commands for creating, inspecting and updating the configuration file.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and data directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("error creating data directory: %w", err)
		}

		// the root command already loaded (and if needed created) the config
		fmt.Fprintln(out, "Config file initialized at:", configFile())
		fmt.Fprintln(out, "Data directory:", cfg.DataDir)
		fmt.Fprintf(out, "Copy %s, %s and %s into it, or point it elsewhere with 'ccgcatalog config set-data'.\n",
			"cards.json", "sets.json", "news.json")
		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Show prints the configuration after .env and CCGCATALOG_* environment
overrides are applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", configFile())
		if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg); err != nil {
			return fmt.Errorf("error encoding config: %w", err)
		}
		return nil
	},
}

// configSetDataCmd represents the config set-data command
var configSetDataCmd = &cobra.Command{
	Use:   "set-data [dir]",
	Short: "Set the default data directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetDataDir(configFile(), args[0]); err != nil {
			return fmt.Errorf("error setting data directory: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Data directory set to: %s\n", args[0])
		return nil
	},
}

func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.GetConfigFilePath()
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetDataCmd)
}
