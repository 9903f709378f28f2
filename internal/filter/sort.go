package filter

import (
	"sort"
	"strings"

	"github.com/arcanaland/ccgcatalog/internal/card"
)

// SortKey selects the field cards are ordered by
type SortKey string

const (
	SortName  SortKey = "name"
	SortATK   SortKey = "atk"
	SortDEF   SortKey = "def"
	SortLevel SortKey = "level"
	SortRank  SortKey = "rank"
	SortLink  SortKey = "link"
	SortDate  SortKey = "date"
)

// SortKeys lists every accepted key
var SortKeys = []SortKey{SortName, SortATK, SortDEF, SortLevel, SortRank, SortLink, SortDate}

// ParseSortKey returns the key for s, falling back to name
func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return SortName
}

// Direction is the sort direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultDirection is ascending for names and descending for stats and dates
func DefaultDirection(key SortKey) Direction {
	if key == SortName {
		return Asc
	}
	return Desc
}

// ParseDirection returns the direction for s, or the key's default
func ParseDirection(s string, key SortKey) Direction {
	switch strings.ToLower(s) {
	case "asc":
		return Asc
	case "desc":
		return Desc
	}
	return DefaultDirection(key)
}

// sortValue is a comparable key; null marks an absent value
type sortValue struct {
	null bool
	num  int
	str  string
}

func intValue(v *int) sortValue {
	if v == nil {
		return sortValue{null: true}
	}
	return sortValue{num: *v}
}

func strValue(s string) sortValue {
	if s == "" {
		return sortValue{null: true}
	}
	return sortValue{str: s}
}

func selector(key SortKey) func(*card.Card) sortValue {
	switch key {
	case SortATK:
		return func(c *card.Card) sortValue { return intValue(c.ATK) }
	case SortDEF:
		return func(c *card.Card) sortValue { return intValue(c.DEF) }
	case SortLevel:
		return func(c *card.Card) sortValue { return intValue(c.Level) }
	case SortRank:
		return func(c *card.Card) sortValue { return intValue(c.Rank) }
	case SortLink:
		return func(c *card.Card) sortValue { return intValue(c.LinkRating) }
	case SortDate:
		// YYYY-MM-DD strings order the same as the dates they name
		return func(c *card.Card) sortValue { return strValue(c.Added()) }
	default:
		return func(c *card.Card) sortValue { return sortValue{str: strings.ToLower(c.Name)} }
	}
}

// Sort returns a sorted copy of cards. Absent values go last in both
// directions; ties fall back to the case-insensitive name, then the ID.
func Sort(cards []card.Card, key SortKey, dir Direction) []card.Card {
	out := make([]card.Card, len(cards))
	copy(out, cards)

	sel := selector(key)
	sort.SliceStable(out, func(i, j int) bool {
		return compare(&out[i], &out[j], sel, dir) < 0
	})
	return out
}

func compare(a, b *card.Card, sel func(*card.Card) sortValue, dir Direction) int {
	va, vb := sel(a), sel(b)

	switch {
	case va.null && !vb.null:
		return 1
	case !va.null && vb.null:
		return -1
	case !va.null && !vb.null:
		c := 0
		switch {
		case va.num < vb.num, va.num == vb.num && va.str < vb.str:
			c = -1
		case va.num > vb.num, va.num == vb.num && va.str > vb.str:
			c = 1
		}
		if dir == Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}

	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
