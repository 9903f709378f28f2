package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/ccgcatalog/internal/card"
	"github.com/arcanaland/ccgcatalog/internal/catalog"
	"github.com/arcanaland/ccgcatalog/internal/render"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the welcome page and the news feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		snapshot := store.Current()
		newRenderer(cmd).Home(len(snapshot.Cards), snapshot.News)
		return nil
	},
}

var banlistCmd = &cobra.Command{
	Use:   "banlist",
	Short: "Show the Banned, Limited and Semi-Limited cards",
	Long: `Banlist merges the TCG ban list dataset (tcg-cards.json) with the catalog's
own cards, the catalog winning on duplicate IDs, and prints the cards grouped
by status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		bl, err := store.Current().BanList(cmd.Context())
		if err != nil {
			logger.Warn("ban list unavailable", zap.Error(err))
			return catalog.ErrBanListUnavailable
		}

		newRenderer(cmd).BanList(bl)
		return nil
	},
}

var releasesCmd = &cobra.Command{
	Use:   "releases [set_code]",
	Short: "List the card sets, or the cards of one set",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		snapshot := store.Current()
		r := newRenderer(cmd)
		if len(args) == 0 {
			r.Releases(snapshot.Sets)
			return nil
		}

		set, err := snapshot.Set(args[0])
		if err != nil {
			return err
		}
		r.Releases([]card.SetInfo{*set})
		fmt.Fprintln(cmd.OutOrStdout())
		cards := snapshot.SetCards(set.Code)
		r.List(render.Paginate(cards, 1, len(cards)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(homeCmd)
	RootCmd.AddCommand(banlistCmd)
	RootCmd.AddCommand(releasesCmd)
}
