// Package urlstate maps filter selections to and from URL query parameters.
// The query string is the only place filter state lives between requests.
package urlstate

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Parameter keys
const (
	KeyText        = "q"
	KeyCategory    = "category"
	KeyIcon        = "icon"
	KeyAttribute   = "attribute"
	KeySet         = "set"
	KeyArchetype   = "archetype"
	KeyCardTypes   = "cardTypes"
	KeyMonsterType = "monsterType"
	KeyLegal       = "legal"
	KeyLinkArrows  = "linkArrows"
	KeySort        = "sort"
	KeyDir         = "dir"
	KeyView        = "view"
	KeyPage        = "page"
	KeyPageSize    = "pageSize"
	KeyFilters     = "filters"
)

// RangeNames are the prefixes of the numeric range keys, e.g. atkMin/atkMax
var RangeNames = []string{"atk", "def", "level", "rank", "link", "scale"}

// RangeState is a numeric range widget. Enabled gates the bounds: a
// disabled range writes nothing even when bounds are held.
type RangeState struct {
	Enabled bool     `json:"enabled"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// FilterState is the filter panel as the user left it
type FilterState struct {
	Q         string `json:"q"`
	Category  string `json:"category"`
	Icon      string `json:"icon"`
	Attribute string `json:"attribute"`
	Set       string `json:"set"`

	Archetype   []string `json:"archetype"`
	CardTypes   []string `json:"cardTypes"`
	MonsterType []string `json:"monsterType"`
	Legal       []string `json:"legal"`
	LinkArrows  []string `json:"linkArrows"`

	ATK   RangeState `json:"atk"`
	DEF   RangeState `json:"def"`
	Level RangeState `json:"level"`
	Rank  RangeState `json:"rank"`
	Link  RangeState `json:"link"`
	Scale RangeState `json:"scale"`

	Collapsed bool `json:"collapsed"`
}

// Ranges returns the range widgets keyed by their parameter prefix
func (s *FilterState) Ranges() map[string]*RangeState {
	return map[string]*RangeState{
		"atk":   &s.ATK,
		"def":   &s.DEF,
		"level": &s.Level,
		"rank":  &s.Rank,
		"link":  &s.Link,
		"scale": &s.Scale,
	}
}

// FromValues reads the panel state out of the query parameters
func FromValues(values url.Values) *FilterState {
	s := &FilterState{
		Q:         values.Get(KeyText),
		Category:  values.Get(KeyCategory),
		Icon:      values.Get(KeyIcon),
		Attribute: values.Get(KeyAttribute),
		Set:       values.Get(KeySet),

		Archetype:   all(values, KeyArchetype),
		CardTypes:   all(values, KeyCardTypes),
		MonsterType: all(values, KeyMonsterType),
		Legal:       all(values, KeyLegal),
		LinkArrows:  all(values, KeyLinkArrows),

		Collapsed: values.Get(KeyFilters) == "0",
	}

	for name, r := range s.Ranges() {
		minKey, maxKey := name+"Min", name+"Max"
		r.Enabled = values.Has(minKey) || values.Has(maxKey)
		r.Min = ParseNumber(values.Get(minKey))
		r.Max = ParseNumber(values.Get(maxKey))
	}
	return s
}

// Apply writes the panel state into values. Empty fields delete their key
// instead of writing an empty value. Keys the panel does not own (sort,
// dir, view, paging) are left alone.
func (s *FilterState) Apply(values url.Values) {
	setOrDel(values, KeyText, s.Q)
	setOrDel(values, KeyCategory, s.Category)
	setOrDel(values, KeyIcon, s.Icon)
	setOrDel(values, KeyAttribute, s.Attribute)
	setOrDel(values, KeySet, s.Set)
	setOrDelAll(values, KeyArchetype, s.Archetype)
	setOrDelAll(values, KeyCardTypes, s.CardTypes)
	setOrDelAll(values, KeyMonsterType, s.MonsterType)
	setOrDelAll(values, KeyLegal, s.Legal)
	setOrDelAll(values, KeyLinkArrows, s.LinkArrows)

	for name, r := range s.Ranges() {
		minKey, maxKey := name+"Min", name+"Max"
		if !r.Enabled {
			values.Del(minKey)
			values.Del(maxKey)
			continue
		}
		setOrDel(values, minKey, FormatNumber(r.Min))
		setOrDel(values, maxKey, FormatNumber(r.Max))
	}

	values.Set(KeyFilters, collapsedFlag(s.Collapsed))
}

// Reset clears every parameter except the panel's collapsed flag and
// returns the empty panel matching it.
func (s *FilterState) Reset() (url.Values, *FilterState) {
	values := url.Values{}
	values.Set(KeyFilters, collapsedFlag(s.Collapsed))
	return values, &FilterState{Collapsed: s.Collapsed}
}

// ToggleCollapsed flips the panel and records the new flag in values
func (s *FilterState) ToggleCollapsed(values url.Values) {
	s.Collapsed = !s.Collapsed
	values.Set(KeyFilters, collapsedFlag(s.Collapsed))
}

// ParseNumber returns nil for empty or malformed input
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

// FormatNumber renders n in its shortest form, "" for nil
func FormatNumber(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}

func collapsedFlag(collapsed bool) string {
	if collapsed {
		return "0"
	}
	return "1"
}

// all returns the non-empty values of a repeated key
func all(values url.Values, key string) []string {
	var out []string
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func setOrDel(values url.Values, key, v string) {
	if v == "" {
		values.Del(key)
		return
	}
	values.Set(key, v)
}

func setOrDelAll(values url.Values, key string, vs []string) {
	values.Del(key)
	for _, v := range vs {
		if v != "" {
			values.Add(key, v)
		}
	}
}
