// Package filter implements the card predicate and the card ordering used
// by every catalog view.
package filter

import "github.com/arcanaland/ccgcatalog/internal/card"

// Range is an optional numeric bound pair. A nil bound is open.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// IsSet reports whether at least one bound is present
func (r Range) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

// Contains reports whether v lies within the range. A nil value is
// outside every range that has a bound.
func (r Range) Contains(v *int) bool {
	if !r.IsSet() {
		return true
	}
	if v == nil {
		return false
	}
	n := float64(*v)
	if r.Min != nil && n < *r.Min {
		return false
	}
	if r.Max != nil && n > *r.Max {
		return false
	}
	return true
}

// Query is the set of constraints applied to every card. Empty fields
// impose no constraint.
type Query struct {
	Text     string        `json:"q,omitempty"` // handled by the search adapter
	Category card.Category `json:"category,omitempty"`

	Sets        []string `json:"set,omitempty"`
	Archetypes  []string `json:"archetype,omitempty"`
	Icons       []string `json:"icon,omitempty"`
	Attributes  []string `json:"attribute,omitempty"`
	CardTypes   []string `json:"cardTypes,omitempty"`
	MonsterType []string `json:"monsterType,omitempty"`
	Legal       []string `json:"legal,omitempty"`
	LinkArrows  []string `json:"linkArrows,omitempty"`

	Level Range `json:"level"`
	Rank  Range `json:"rank"`
	Link  Range `json:"link"`
	Scale Range `json:"scale"`
	ATK   Range `json:"atk"`
	DEF   Range `json:"def"`
}

// IsZero reports whether the query constrains nothing
func (q *Query) IsZero() bool {
	return q.Text == "" && q.Category == "" &&
		len(q.Sets) == 0 && len(q.Archetypes) == 0 && len(q.Icons) == 0 &&
		len(q.Attributes) == 0 && len(q.CardTypes) == 0 && len(q.MonsterType) == 0 &&
		len(q.Legal) == 0 && len(q.LinkArrows) == 0 &&
		!q.Level.IsSet() && !q.Rank.IsSet() && !q.Link.IsSet() &&
		!q.Scale.IsSet() && !q.ATK.IsSet() && !q.DEF.IsSet()
}
