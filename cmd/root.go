package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arcanaland/ccgcatalog/internal/catalog"
	"github.com/arcanaland/ccgcatalog/internal/config"
	"github.com/arcanaland/ccgcatalog/internal/render"
	"github.com/arcanaland/ccgcatalog/internal/search"
)

var (
	verbose    bool
	noColor    bool
	dataDir    string
	configPath string

	cfg      *config.Config
	logger   = zap.NewNop()
	logLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ccgcatalog",
	Short: "Browse, filter and serve a custom trading card catalog",
	Long: `ccgcatalog browses a catalog of custom trading cards stored as JSON files.
It lists, searches, filters and sorts cards in the terminal, shows card art,
prints the ban list and release schedule, and serves the same queries over HTTP.

Filters use the same parameters as the web catalog's URLs, so a query string
copied from the browser can be passed verbatim with --query.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logLevel.SetLevel(zapcore.DebugLevel)
		}
		zc := zap.NewProductionConfig()
		zc.Level = logLevel
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		if configPath != "" {
			cfg, err = config.Load(configPath)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configFile(), err)
		}

		if noColor || !cfg.Display.Color {
			color.NoColor = true
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	RootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Data directory holding cards.json (default from config)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/ccgcatalog/config.toml)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// openStore loads the catalog from the --data directory or the configured one
func openStore(ctx context.Context) (*catalog.Store, error) {
	dir := cfg.ResolveDataDir(dataDir)
	logger.Debug("loading catalog", zap.String("dir", dir))
	return catalog.NewStore(ctx, dir, logger)
}

func searchOptions() search.Options {
	opts := search.DefaultOptions()
	opts.Threshold = cfg.Search.Threshold
	opts.MaxResults = cfg.Search.MaxResults
	return opts
}

func newRenderer(cmd *cobra.Command) *render.Renderer {
	return render.New(cmd.OutOrStdout(), 0)
}
