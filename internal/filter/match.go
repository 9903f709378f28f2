package filter

import (
	"strings"

	"github.com/arcanaland/ccgcatalog/internal/card"
)

// Matches reports whether c satisfies every constraint of q.
//
// Categorical fields are open-world: an unset field matches every card.
// Numeric ranges are closed-world: a card without the stat fails any range
// that has a bound.
func Matches(c *card.Card, q *Query) bool {
	if q.Category != "" && c.Category != q.Category {
		return false
	}

	if len(q.Sets) > 0 && !matchSet(c.Set, q.Sets) {
		return false
	}

	if len(q.Archetypes) > 0 && !anyEqualFold(c.Archetype, q.Archetypes) {
		return false
	}
	if len(q.Icons) > 0 && !anyEqualFold(c.Icon, q.Icons) {
		return false
	}

	if !allPresent(c.CardTypes, q.CardTypes) {
		return false
	}
	if !allPresent(c.MonsterType, q.MonsterType) {
		return false
	}

	if len(q.Attributes) > 0 && !anyEqualFold(c.Attribute, q.Attributes) {
		return false
	}

	if !q.Level.Contains(c.Level) ||
		!q.Rank.Contains(c.Rank) ||
		!q.Link.Contains(c.LinkRating) ||
		!q.Scale.Contains(c.Scale) ||
		!q.ATK.Contains(c.ATK) ||
		!q.DEF.Contains(c.DEF) {
		return false
	}

	if len(q.LinkArrows) > 0 && !hasArrows(c.LinkArrows, q.LinkArrows) {
		return false
	}

	if len(q.Legal) > 0 {
		wanted := LegalSet(q.Legal)
		if len(wanted) > 0 {
			status := c.BanStatus()
			if status == card.Unrestricted || !wanted[status] {
				return false
			}
		}
	}

	return true
}

// Apply returns the cards of pool that match q, preserving pool order
func Apply(pool []card.Card, q *Query) []card.Card {
	out := make([]card.Card, 0, len(pool))
	for i := range pool {
		if Matches(&pool[i], q) {
			out = append(out, pool[i])
		}
	}
	return out
}

// LegalSet normalizes requested legality values. Unknown values are dropped.
func LegalSet(values []string) map[card.BanStatus]bool {
	wanted := make(map[card.BanStatus]bool, len(values))
	for _, v := range values {
		if s, ok := card.ParseBanStatus(v); ok {
			wanted[s] = true
		}
	}
	return wanted
}

// ArrowSet normalizes requested arrows. Unknown values are dropped.
func ArrowSet(values []string) []card.Arrow {
	arrows := make([]card.Arrow, 0, len(values))
	for _, v := range values {
		if a, ok := card.ParseArrow(v); ok {
			arrows = append(arrows, a)
		}
	}
	return arrows
}

func matchSet(set string, requested []string) bool {
	s := strings.ToLower(set)
	for _, r := range requested {
		r = strings.ToLower(r)
		if s == r || strings.Contains(s, r) {
			return true
		}
	}
	return false
}

func anyEqualFold(val string, requested []string) bool {
	if val == "" {
		return false
	}
	for _, r := range requested {
		if strings.EqualFold(val, r) {
			return true
		}
	}
	return false
}

// allPresent reports whether every requested value is in have
func allPresent(have, requested []string) bool {
	for _, r := range requested {
		found := false
		for _, h := range have {
			if strings.EqualFold(h, r) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hasArrows(have []int, requested []string) bool {
	for _, a := range ArrowSet(requested) {
		found := false
		for _, h := range have {
			if h == int(a) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
