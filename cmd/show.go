package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/ccgcatalog/internal/config"
	"github.com/arcanaland/ccgcatalog/internal/viewer"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display information about a specific card with ANSI art",
	Long: `Show displays the details of one card next to ANSI terminal art generated
from its image. Images are looked up under the configured assets directory and
converted art is cached in XDG_CACHE_HOME/ccgcatalog.

Examples:
  ccgcatalog show CARD-0001
  ccgcatalog show --no-art CARD-0042`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		c, err := store.Current().Card(args[0])
		if err != nil {
			return err
		}

		art := viewer.ErrImageUnavailable.Error()
		if noArt, _ := cmd.Flags().GetBool("no-art"); !noArt {
			v := viewer.New(cfg.AssetsDir, config.GetCacheDir())
			if w, _ := cmd.Flags().GetInt("width"); w > 0 {
				v.Width = w
				v.Height = w * viewer.DefaultHeight / viewer.DefaultWidth
			}

			a, err := v.Art(c.Image)
			switch {
			case errors.Is(err, viewer.ErrImageUnavailable):
				logger.Debug("no art for card", zap.String("id", c.ID), zap.Error(err))
			case err != nil:
				return fmt.Errorf("error loading ANSI art: %w", err)
			default:
				art = a
			}
		}

		newRenderer(cmd).Card(c, art)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("no-art", false, "Skip the image art")
	showCmd.Flags().Int("width", 0, "Art width in columns (default 40)")
}
