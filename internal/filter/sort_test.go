package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/arcanaland/ccgcatalog/internal/card"
)

func atks(cards []card.Card) []any {
	out := make([]any, len(cards))
	for i, c := range cards {
		if c.ATK == nil {
			out[i] = nil
		} else {
			out[i] = *c.ATK
		}
	}
	return out
}

func names(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

func TestSort_NullsLast(t *testing.T) {
	cards := []card.Card{
		{ID: "a", Name: "A", ATK: intp(2000)},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C", ATK: intp(1000)},
	}

	assert.Equal(t, []any{1000, 2000, nil}, atks(Sort(cards, SortATK, Asc)))
	assert.Equal(t, []any{2000, 1000, nil}, atks(Sort(cards, SortATK, Desc)))
}

func TestSort_Date(t *testing.T) {
	mk := func(name, added string) card.Card {
		return card.Card{ID: name, Name: name, Timestamps: &card.Timestamps{Added: added}}
	}
	cards := []card.Card{mk("x", "2024-01-01"), mk("y", "2025-06-01"), mk("z", "2023-12-31"), {ID: "n", Name: "n"}}

	got := Sort(cards, SortDate, Asc)
	added := make([]string, len(got))
	for i, c := range got {
		added[i] = c.Added()
	}
	if diff := cmp.Diff([]string{"2023-12-31", "2024-01-01", "2025-06-01", ""}, added); diff != "" {
		t.Errorf("date order mismatch (-want +got):\n%s", diff)
	}
}

func TestSort_NameFallback(t *testing.T) {
	cards := []card.Card{
		{ID: "1", Name: "beta", Level: intp(4)},
		{ID: "2", Name: "Alpha", Level: intp(4)},
		{ID: "3", Name: "delta"},
		{ID: "4", Name: "Charlie"},
	}

	assert.Equal(t, []string{"Alpha", "beta", "Charlie", "delta"}, names(Sort(cards, SortLevel, Desc)))
	assert.Equal(t, []string{"Alpha", "beta", "Charlie", "delta"}, names(Sort(cards, SortLevel, Asc)))
}

func TestSort_ByName(t *testing.T) {
	cards := []card.Card{{ID: "1", Name: "bravo"}, {ID: "2", Name: "Alpha"}, {ID: "3", Name: "charlie"}}

	assert.Equal(t, []string{"Alpha", "bravo", "charlie"}, names(Sort(cards, SortName, Asc)))
	assert.Equal(t, []string{"charlie", "bravo", "Alpha"}, names(Sort(cards, SortName, Desc)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	cards := []card.Card{{ID: "1", Name: "b"}, {ID: "2", Name: "a"}}
	_ = Sort(cards, SortName, Asc)
	assert.Equal(t, "b", cards[0].Name)
}

func TestParseSortKeyAndDirection(t *testing.T) {
	assert.Equal(t, SortLink, ParseSortKey("LINK"))
	assert.Equal(t, SortName, ParseSortKey("bogus"))

	assert.Equal(t, Asc, ParseDirection("", SortName))
	assert.Equal(t, Desc, ParseDirection("", SortATK))
	assert.Equal(t, Asc, ParseDirection("asc", SortATK))
	assert.Equal(t, Desc, ParseDirection("nonsense", SortDate))
}
