package urlstate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/arcanaland/ccgcatalog/internal/card"
	"github.com/arcanaland/ccgcatalog/internal/filter"
)

// Layout is the result presentation
type Layout string

const (
	Grid Layout = "grid"
	List Layout = "list"
)

// DefaultPageSize bounds how many cards one window holds
const DefaultPageSize = 60

// View is everything a results page needs from the URL
type View struct {
	Query    filter.Query
	Sort     filter.SortKey
	Dir      filter.Direction
	Layout   Layout
	Page     int // 1-based
	PageSize int
}

// ParseQuery rebuilds the view from query parameters. Malformed numbers
// are treated as absent.
func ParseQuery(values url.Values) View {
	q := filter.Query{
		Text:     strings.TrimSpace(values.Get(KeyText)),
		Category: card.Category(values.Get(KeyCategory)),

		Sets:        all(values, KeySet),
		Archetypes:  all(values, KeyArchetype),
		Icons:       all(values, KeyIcon),
		Attributes:  all(values, KeyAttribute),
		CardTypes:   all(values, KeyCardTypes),
		MonsterType: all(values, KeyMonsterType),
		Legal:       all(values, KeyLegal),
		LinkArrows:  all(values, KeyLinkArrows),

		Level: parseRange(values, "level"),
		Rank:  parseRange(values, "rank"),
		Link:  parseRange(values, "link"),
		Scale: parseRange(values, "scale"),
		ATK:   parseRange(values, "atk"),
		DEF:   parseRange(values, "def"),
	}

	key := filter.ParseSortKey(values.Get(KeySort))
	v := View{
		Query:    q,
		Sort:     key,
		Dir:      filter.ParseDirection(values.Get(KeyDir), key),
		Layout:   Grid,
		Page:     positiveInt(values.Get(KeyPage), 1),
		PageSize: positiveInt(values.Get(KeyPageSize), DefaultPageSize),
	}
	if strings.EqualFold(values.Get(KeyView), string(List)) {
		v.Layout = List
	}
	return v
}

// Offset is the index of the first card of the current page
func (v View) Offset() int {
	return (v.Page - 1) * v.PageSize
}

func parseRange(values url.Values, name string) filter.Range {
	return filter.Range{
		Min: ParseNumber(values.Get(name + "Min")),
		Max: ParseNumber(values.Get(name + "Max")),
	}
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
