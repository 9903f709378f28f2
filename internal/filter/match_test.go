package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcanaland/ccgcatalog/internal/card"
)

func intp(n int) *int { return &n }

func f(n float64) *float64 { return &n }

func sampleCards() []card.Card {
	return []card.Card{
		{
			ID: "CARD-0001", Name: "Stardrake Herald", Category: card.Monster,
			Set: "CCG-01 Brave X", Archetype: "Stardrake", Attribute: "LIGHT",
			CardTypes: []string{"Tuner", "Synchro", "Effect"}, MonsterType: []string{"Dragon"},
			Level: intp(7), ATK: intp(2500), DEF: intp(2000),
			Legal: &card.Legal{Banned: true, Limited: true},
		},
		{
			ID: "CARD-0002", Name: "Gearwork Link", Category: card.Monster,
			Set: "CCG-02 Iron Tide", CardTypes: []string{"Link", "Effect"}, MonsterType: []string{"Machine"},
			Attribute: "EARTH", LinkRating: intp(2), LinkArrows: []int{int(card.ArrowBottomLeft), int(card.ArrowBottomRight)},
			ATK: intp(1600),
		},
		{
			ID: "CARD-0003", Name: "Tainted Pact", Category: card.Spell, Icon: "Quick-Play",
			Set: "TATA-001 Tainted Tails", Legal: &card.Legal{SemiLimited: true},
		},
		{
			ID: "CARD-0004", Name: "Lone Tuner", Category: card.Monster,
			CardTypes: []string{"Tuner"}, MonsterType: []string{"Machine", "Cyberse"}, Level: intp(1),
		},
	}
}

func TestMatches_EmptyQueryMatchesEverything(t *testing.T) {
	q := &Query{}
	for _, c := range sampleCards() {
		c := c
		assert.True(t, Matches(&c, q), c.ID)
		assert.Equal(t, Matches(&c, q), Matches(&c, q), "pure")
	}
}

func TestMatches_Category(t *testing.T) {
	cards := sampleCards()
	q := &Query{Category: card.Spell}
	assert.False(t, Matches(&cards[0], q))
	assert.True(t, Matches(&cards[2], q))
}

func TestMatches_SetSubstring(t *testing.T) {
	cards := sampleCards()
	q := &Query{Sets: []string{"CCG-01"}}
	assert.True(t, Matches(&cards[0], q))
	assert.False(t, Matches(&cards[1], q))

	q = &Query{Sets: []string{"ccg-01 brave x"}}
	assert.True(t, Matches(&cards[0], q), "equality is case-insensitive")

	q = &Query{Sets: []string{"NOPE", "iron"}}
	assert.True(t, Matches(&cards[1], q), "any requested set may match")
	assert.False(t, Matches(&cards[3], q), "a card without a set matches no set filter")
}

func TestMatches_SingleValuedAnyOf(t *testing.T) {
	cards := sampleCards()

	assert.True(t, Matches(&cards[0], &Query{Archetypes: []string{"other", "stardrake"}}))
	assert.False(t, Matches(&cards[1], &Query{Archetypes: []string{"stardrake"}}))

	assert.True(t, Matches(&cards[2], &Query{Icons: []string{"quick-play"}}))
	assert.False(t, Matches(&cards[0], &Query{Icons: []string{"Normal"}}))

	assert.True(t, Matches(&cards[0], &Query{Attributes: []string{"dark", "light"}}))
	assert.False(t, Matches(&cards[3], &Query{Attributes: []string{"LIGHT"}}))
}

func TestMatches_CardTypesRequireAll(t *testing.T) {
	cards := sampleCards()
	q := &Query{CardTypes: []string{"Tuner", "Synchro"}}

	assert.False(t, Matches(&cards[3], q), "Tuner only")
	assert.True(t, Matches(&cards[0], q), "Tuner, Synchro, Effect")
	assert.True(t, Matches(&cards[0], &Query{CardTypes: []string{"tuner", "synchro"}}))
}

func TestMatches_MonsterTypeRequireAll(t *testing.T) {
	cards := sampleCards()

	assert.True(t, Matches(&cards[3], &Query{MonsterType: []string{"machine", "cyberse"}}))
	assert.False(t, Matches(&cards[1], &Query{MonsterType: []string{"Machine", "Cyberse"}}))
	assert.False(t, Matches(&cards[2], &Query{MonsterType: []string{"Machine"}}))
}

func TestMatches_LinkArrows(t *testing.T) {
	cards := sampleCards()

	assert.True(t, Matches(&cards[1], &Query{LinkArrows: []string{"BL", "br"}}))
	assert.True(t, Matches(&cards[1], &Query{LinkArrows: []string{"5"}}), "numeric index")
	assert.False(t, Matches(&cards[1], &Query{LinkArrows: []string{"BL", "T"}}))
	assert.False(t, Matches(&cards[0], &Query{LinkArrows: []string{"BL"}}))
}

func TestMatches_RangesExcludeNullStats(t *testing.T) {
	cards := sampleCards()
	q := &Query{ATK: Range{Min: f(0), Max: f(3000)}}

	assert.True(t, Matches(&cards[0], q))
	assert.False(t, Matches(&cards[2], q), "atk=null is excluded")
	assert.False(t, Matches(&cards[3], &Query{ATK: Range{Min: f(0)}}), "a single bound also excludes null")
}

func TestMatches_RangeBounds(t *testing.T) {
	cards := sampleCards()

	assert.True(t, Matches(&cards[0], &Query{Level: Range{Min: f(7), Max: f(7)}}), "bounds are inclusive")
	assert.False(t, Matches(&cards[0], &Query{Level: Range{Max: f(6)}}))
	assert.True(t, Matches(&cards[1], &Query{Link: Range{Min: f(2)}}), "link maps to linkRating")
	assert.False(t, Matches(&cards[0], &Query{Link: Range{Min: f(1)}}))
	assert.False(t, Matches(&cards[0], &Query{DEF: Range{Min: f(2100)}}))
	assert.False(t, Matches(&cards[0], &Query{Scale: Range{Max: f(13)}}))
	assert.False(t, Matches(&cards[0], &Query{Rank: Range{Min: f(0)}}))
}

func TestMatches_Legal(t *testing.T) {
	cards := sampleCards()

	assert.True(t, Matches(&cards[0], &Query{Legal: []string{"banned"}}))
	assert.False(t, Matches(&cards[0], &Query{Legal: []string{"limited"}}), "banned wins over limited")
	assert.True(t, Matches(&cards[2], &Query{Legal: []string{"semi", "limited"}}))
	assert.False(t, Matches(&cards[3], &Query{Legal: []string{"Forbidden", "Limited", "Semi-Limited"}}))

	// only unknown values: no constraint
	assert.True(t, Matches(&cards[3], &Query{Legal: []string{"legal"}}))
}

func TestApply_PreservesOrder(t *testing.T) {
	got := Apply(sampleCards(), &Query{Category: card.Monster})
	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"CARD-0001", "CARD-0002", "CARD-0004"}, ids)
}

func TestQuery_IsZero(t *testing.T) {
	assert.True(t, (&Query{}).IsZero())
	assert.False(t, (&Query{DEF: Range{Max: f(0)}}).IsZero())
}
