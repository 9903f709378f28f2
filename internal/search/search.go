// Package search narrows the card list for a free-text query using weighted
// approximate matching over name, text, archetype and keywords.
package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/arcanaland/ccgcatalog/internal/card"
)

// DefaultThreshold is the looseness a field match may have before it is rejected
const DefaultThreshold = 0.3

// Key is a searchable card field with its weight
type Key struct {
	Name   string
	Weight float64
	values func(*card.Card) []string
}

// DefaultKeys weight the name highest and keywords lowest
var DefaultKeys = []Key{
	{Name: "name", Weight: 0.5, values: func(c *card.Card) []string { return []string{c.Name} }},
	{Name: "text", Weight: 0.3, values: func(c *card.Card) []string { return []string{c.Text} }},
	{Name: "archetype", Weight: 0.1, values: func(c *card.Card) []string { return []string{c.Archetype} }},
	{Name: "keywords", Weight: 0.1, values: func(c *card.Card) []string { return c.Keywords }},
}

// Options configures the index
type Options struct {
	// Threshold in (0,1); out-of-range values select DefaultThreshold
	Threshold float64
	// MaxResults limits the number of results (0 = unlimited)
	MaxResults int
}

// DefaultOptions returns the catalog search settings
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

// Result is a matching card with its weighted relevance
type Result struct {
	Card  card.Card
	Score float64
	Index int // position in the indexed list
}

// field is the flattened text of one key; owners maps entries back to cards
type field struct {
	key    Key
	texts  []string
	owners []int
}

func (f *field) String(i int) string { return f.texts[i] }
func (f *field) Len() int            { return len(f.texts) }

// Index is built over an immutable card list
type Index struct {
	cards  []card.Card
	fields []*field
	opts   Options
}

// NewIndex builds an index over cards
func NewIndex(cards []card.Card, opts Options) *Index {
	if opts.Threshold <= 0 || opts.Threshold >= 1 {
		opts.Threshold = DefaultThreshold
	}

	ix := &Index{cards: cards, opts: opts}
	for _, k := range DefaultKeys {
		f := &field{key: k}
		for i := range cards {
			for _, v := range k.values(&cards[i]) {
				if v == "" {
					continue
				}
				f.texts = append(f.texts, strings.ToLower(v))
				f.owners = append(f.owners, i)
			}
		}
		ix.fields = append(ix.fields, f)
	}
	return ix
}

// Search returns the matching cards, most relevant first. An empty query
// returns nil.
func (ix *Index) Search(query string) []Result {
	pattern := strings.ToLower(strings.TrimSpace(query))
	if pattern == "" {
		return nil
	}

	// best score per card per key, keywords may contribute several entries
	best := make(map[int]map[string]float64)
	record := func(f *field, entry int, closeness float64) {
		owner := f.owners[entry]
		if best[owner] == nil {
			best[owner] = make(map[string]float64, len(ix.fields))
		}
		if s := f.key.Weight * closeness; s > best[owner][f.key.Name] {
			best[owner][f.key.Name] = s
		}
	}

	words := tokens(pattern)
	for _, f := range ix.fields {
		matched := make(map[int]bool)
		for _, m := range fuzzy.FindFrom(pattern, f) {
			if closeness, ok := ix.closeness(pattern, m); ok {
				record(f, m.Index, closeness)
				matched[m.Index] = true
			}
		}
		// misspellings: entries the subsequence pass could not place
		for i, text := range f.texts {
			if matched[i] {
				continue
			}
			if closeness, ok := ix.nearWord(words, text); ok {
				record(f, i, closeness)
			}
		}
	}

	results := make([]Result, 0, len(best))
	for idx, byKey := range best {
		var score float64
		for _, s := range byKey {
			score += s
		}
		results = append(results, Result{Card: ix.cards[idx], Score: score, Index: idx})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})

	if ix.opts.MaxResults > 0 && len(results) > ix.opts.MaxResults {
		results = results[:ix.opts.MaxResults]
	}
	return results
}

// closeness turns a subsequence match into a [0,1] value, 1 for a
// contiguous occurrence. Matches looser than the threshold are rejected.
func (ix *Index) closeness(pattern string, m fuzzy.Match) (float64, bool) {
	if strings.Contains(m.Str, pattern) {
		return 1, true
	}
	if len(m.MatchedIndexes) == 0 {
		return 0, false
	}
	// matched indexes are byte offsets
	first, last := m.MatchedIndexes[0], m.MatchedIndexes[len(m.MatchedIndexes)-1]
	span := utf8.RuneCountInString(m.Str[first:last]) + 1
	looseness := float64(span-len(m.MatchedIndexes)) / float64(span)
	if looseness > ix.opts.Threshold {
		return 0, false
	}
	return 1 - looseness, true
}

// nearWord compares the query words with every run of as many consecutive
// words in text and keeps the closest one by edit distance.
func (ix *Index) nearWord(query []string, text string) (float64, bool) {
	if len(query) == 0 {
		return 0, false
	}
	want := strings.Join(query, " ")
	words := tokens(text)

	best, found := 0.0, false
	for i := 0; i+len(query) <= len(words); i++ {
		candidate := strings.Join(words[i:i+len(query)], " ")
		a, b := []rune(want), []rune(candidate)
		looseness := float64(editDistance(a, b)) / float64(max(len(a), len(b)))
		if looseness > ix.opts.Threshold {
			continue
		}
		if c := 1 - looseness; !found || c > best {
			best, found = c, true
		}
	}
	return best, found
}

func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != ':' && r != '\''
	})
}

// editDistance is the Levenshtein distance with adjacent transpositions
// counted as one edit.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	d := make([][]int, len(a)+1)
	for i := range d {
		d[i] = make([]int, len(b)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d[i][j] = min(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+1)
			}
		}
	}
	return d[len(a)][len(b)]
}

// Cards runs a one-off search over cards and returns the matching cards in
// relevance order. The index is rebuilt on every call.
func Cards(cards []card.Card, query string, opts Options) []card.Card {
	results := NewIndex(cards, opts).Search(query)
	out := make([]card.Card, len(results))
	for i, r := range results {
		out[i] = r.Card
	}
	return out
}
