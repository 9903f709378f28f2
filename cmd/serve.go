package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arcanaland/ccgcatalog/internal/api"
	"github.com/arcanaland/ccgcatalog/internal/catalog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Serve answers the catalog queries as JSON under /api/v1 and serves card
images under /assets. The port comes from --port, then the PORT environment
variable, then the config file.

With --watch (the default from config) the data directory is watched and the
catalog is reloaded when a JSON file changes; a reload that fails keeps the
previous catalog.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			logLevel.SetLevel(zapcore.InfoLevel)
		}

		port, err := servePort(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		watch := cfg.Server.WatchData
		if cmd.Flags().Changed("watch") {
			watch, _ = cmd.Flags().GetBool("watch")
		}
		if watch {
			w, err := catalog.NewWatcher(store, logger)
			if err != nil {
				return fmt.Errorf("failed to create data watcher: %w", err)
			}
			if err := w.Start(ctx); err != nil {
				w.Stop()
				return fmt.Errorf("failed to watch %s: %w", store.Dir(), err)
			}
			defer w.Stop()
		}

		srv := api.NewServer(&api.Config{
			Port:           port,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AssetsDir:      cfg.AssetsDir,
			Search:         searchOptions(),
			PageSize:       cfg.Display.PageSize,
		}, store, logger)

		errCh := srv.Start()
		fmt.Fprintf(cmd.OutOrStdout(), "Serving %d cards on http://localhost:%d\n", len(store.Current().Cards), port)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("API server error: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
		return nil
	},
}

// servePort picks --port, then $PORT, then the configured port
func servePort(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("port") {
		return cmd.Flags().GetInt("port")
	}
	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return 0, fmt.Errorf("invalid PORT %q", p)
		}
		return port, nil
	}
	return cfg.Server.Port, nil
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Bool("watch", true, "Reload the catalog when the data directory changes")
}
