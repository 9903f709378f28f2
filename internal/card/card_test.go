package card

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanStatus_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		legal *Legal
		want  BanStatus
	}{
		{"no flags", nil, Unrestricted},
		{"empty flags", &Legal{}, Unrestricted},
		{"banned and limited", &Legal{Banned: true, Limited: true}, Forbidden},
		{"limited and semi", &Legal{Limited: true, SemiLimited: true}, Limited},
		{"semi only", &Legal{SemiLimited: true}, SemiLimited},
		{"all flags", &Legal{Banned: true, Limited: true, SemiLimited: true}, Forbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Card{Legal: tt.legal}
			assert.Equal(t, tt.want, c.BanStatus())
		})
	}
}

func TestParseBanStatus(t *testing.T) {
	for in, want := range map[string]BanStatus{
		"banned":       Forbidden,
		"Forbidden":    Forbidden,
		"LIMITED":      Limited,
		"semi":         SemiLimited,
		"semilimited":  SemiLimited,
		"Semi-Limited": SemiLimited,
		"semi_limited": SemiLimited,
	} {
		got, ok := ParseBanStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseBanStatus("legal")
	assert.False(t, ok)
}

func TestParseArrow(t *testing.T) {
	a, ok := ParseArrow("tr")
	require.True(t, ok)
	assert.Equal(t, ArrowTopRight, a)

	a, ok = ParseArrow("7")
	require.True(t, ok)
	assert.Equal(t, ArrowTopLeft, a)
	assert.Equal(t, "TL", a.Code())

	for _, bad := range []string{"", "X", "8", "-1", "1.5"} {
		_, ok := ParseArrow(bad)
		assert.False(t, ok, bad)
	}
}

func TestCard_UnmarshalNulls(t *testing.T) {
	raw := `{
		"id": "CARD-0001", "name": "STARDRAKE", "image": "/assets/cards/STARDRAKE.jpg",
		"set": null, "archetype": "Stardrake", "category": "Monster", "icon": null,
		"cardTypes": ["Effect","Link"], "monsterType": ["Dragon"], "attribute": "LIGHT",
		"level": null, "rank": null, "linkRating": 2, "linkArrows": [1,5], "scale": null,
		"atk": 1800, "def": null, "text": null, "keywords": null,
		"legal": {"limited": true}, "timestamps": {"added": "2025-01-17"}
	}`

	var c Card
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Empty(t, c.Set)
	assert.Nil(t, c.Level)
	assert.Nil(t, c.DEF)
	require.NotNil(t, c.LinkRating)
	assert.Equal(t, 2, *c.LinkRating)
	require.NotNil(t, c.ATK)
	assert.Equal(t, 1800, *c.ATK)
	assert.Equal(t, []int{1, 5}, c.LinkArrows)
	assert.True(t, c.IsLink())
	assert.Equal(t, Limited, c.BanStatus())
	assert.Equal(t, "2025-01-17", c.Added())
}
