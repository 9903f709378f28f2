package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/ccgcatalog/internal/render"
	"github.com/arcanaland/ccgcatalog/internal/urlstate"
)

// cardsCmd represents the cards command
var cardsCmd = &cobra.Command{
	Use:     "cards",
	Aliases: []string{"ls", "search"},
	Short:   "List, search and filter cards",
	Long: `Cards lists the catalog through the same pipeline as the web catalog:
the free-text query narrows the pool, the filters are applied, the result is
sorted and one page of it is rendered as a grid or a list.

Flags mirror the URL parameters. Repeat a flag or separate values with commas
for multi-valued filters. A raw query string can be given with --query; flags
override the parameters it sets.

Examples:
  ccgcatalog cards --category Monster --attribute DARK --sort atk
  ccgcatalog cards --q herald --view list
  ccgcatalog cards --link-arrows T,BR --link-min 2
  ccgcatalog cards --query 'cardTypes=Xyz&rankMin=4&sort=rank&dir=asc'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := queryValues(cmd)
		if err != nil {
			return err
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}

		view := urlstate.ParseQuery(values)
		if !values.Has(urlstate.KeyPageSize) {
			view.PageSize = cfg.Display.PageSize
		}
		if !values.Has(urlstate.KeyView) && cfg.Display.View == string(urlstate.List) {
			view.Layout = urlstate.List
		}

		results := store.Current().Results(&view.Query, view.Sort, view.Dir, searchOptions())
		win := render.Paginate(results, view.Page, view.PageSize)

		r := newRenderer(cmd)
		if view.Layout == urlstate.List {
			r.List(win)
		} else {
			r.Grid(win)
		}
		return nil
	},
}

// stringParams map flags to single-valued URL parameters
var stringParams = []struct{ flag, key, usage string }{
	{"q", urlstate.KeyText, "Free-text search over name, text, archetype and keywords"},
	{"category", urlstate.KeyCategory, "Card category: Monster, Spell or Trap"},
	{"sort", urlstate.KeySort, "Sort key: name, atk, def, level, rank, link or date"},
	{"dir", urlstate.KeyDir, "Sort direction: asc or desc (default asc for name, desc otherwise)"},
	{"view", urlstate.KeyView, "Layout: grid or list"},
}

// sliceParams map flags to repeated URL parameters
var sliceParams = []struct{ flag, key, usage string }{
	{"set", urlstate.KeySet, "Set code or name, matched as a case-insensitive substring"},
	{"archetype", urlstate.KeyArchetype, "Archetype (any of)"},
	{"icon", urlstate.KeyIcon, "Spell/Trap icon (any of)"},
	{"attribute", urlstate.KeyAttribute, "Monster attribute (any of)"},
	{"card-types", urlstate.KeyCardTypes, "Card types the card must all have, e.g. Effect,Xyz"},
	{"monster-type", urlstate.KeyMonsterType, "Monster types the card must all have"},
	{"legal", urlstate.KeyLegal, "Ban status: banned, limited or semi (any of)"},
	{"link-arrows", urlstate.KeyLinkArrows, "Link arrows the card must all have: T,TR,R,BR,B,BL,L,TL or 0-7"},
}

// addQueryFlags registers one flag per URL parameter
func addQueryFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("query", "", "Raw URL query string, e.g. 'category=Monster&atkMin=2000'")
	for _, p := range stringParams {
		flags.String(p.flag, "", p.usage)
	}
	for _, p := range sliceParams {
		flags.StringSlice(p.flag, nil, p.usage)
	}
	for _, name := range urlstate.RangeNames {
		label := strings.ToUpper(name[:1]) + name[1:]
		flags.String(name+"-min", "", label+" lower bound")
		flags.String(name+"-max", "", label+" upper bound")
	}
	flags.Int("page", 1, "Page of results to show")
	flags.Int("page-size", 0, "Cards per page (default from config)")
}

// queryValues builds the URL parameters described by the command's flags.
// Only flags given on the command line override --query.
func queryValues(cmd *cobra.Command) (url.Values, error) {
	flags := cmd.Flags()

	raw, _ := flags.GetString("query")
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}

	for _, p := range stringParams {
		if flags.Changed(p.flag) {
			v, _ := flags.GetString(p.flag)
			values.Set(p.key, v)
		}
	}
	for _, p := range sliceParams {
		if flags.Changed(p.flag) {
			vs, _ := flags.GetStringSlice(p.flag)
			values[p.key] = vs
		}
	}
	for _, name := range urlstate.RangeNames {
		for _, bound := range []string{"min", "max"} {
			flag := name + "-" + bound
			if flags.Changed(flag) {
				v, _ := flags.GetString(flag)
				values.Set(name+strings.ToUpper(bound[:1])+bound[1:], v)
			}
		}
	}
	if flags.Changed("page") {
		n, _ := flags.GetInt("page")
		values.Set(urlstate.KeyPage, strconv.Itoa(n))
	}
	if flags.Changed("page-size") {
		n, _ := flags.GetInt("page-size")
		values.Set(urlstate.KeyPageSize, strconv.Itoa(n))
	}
	return values, nil
}

func init() {
	RootCmd.AddCommand(cardsCmd)
	addQueryFlags(cardsCmd)
}
