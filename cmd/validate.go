package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/ccgcatalog/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a catalog data directory",
	Long: `Validate checks a data directory before it is served: cards.json must parse,
IDs and set codes must be unique, categories, icons, link arrows and dates must
be well formed. Missing images, unknown sets and a missing ban list dataset are
reported as warnings.

Without a path the configured data directory is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.ResolveDataDir(dataDir)
		if len(args) == 1 {
			dir = args[0]
		}

		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("data directory not found: %s", dir)
		}

		v := validator.NewValidator(dir, cfg.AssetsDir)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "%s Catalog '%s' is valid.\n", color.GreenString("✅"), dir)
		} else {
			fmt.Fprintf(out, "%s Catalog '%s' has %d validation errors:\n", color.RedString("❌"), dir, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, color.YellowString(warn))
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
