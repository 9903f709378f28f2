package catalog

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/arcanaland/ccgcatalog/internal/card"
)

// ErrBanListUnavailable is the user-facing error when the ban list dataset fails to load
var ErrBanListUnavailable = errors.New("failed to load ban list.")

// BanList groups restricted cards by status
type BanList struct {
	Forbidden   []card.Card `json:"forbidden"`
	Limited     []card.Card `json:"limited"`
	SemiLimited []card.Card `json:"semiLimited"`
}

// Sections returns the groups in display order with their titles
func (b *BanList) Sections() []Section {
	return []Section{
		{Title: "Banned", Status: card.Forbidden, Cards: b.Forbidden},
		{Title: "Limited", Status: card.Limited, Cards: b.Limited},
		{Title: "Semi-Limited", Status: card.SemiLimited, Cards: b.SemiLimited},
	}
}

// Section is one titled ban list group
type Section struct {
	Title  string         `json:"title"`
	Status card.BanStatus `json:"status"`
	Cards  []card.Card    `json:"cards"`
}

// BanlistCards returns the TCG cards merged with the catalog's own cards,
// deduplicated by ID with the catalog's card winning. The TCG file is read
// once per snapshot on first use; a failure is remembered and not retried.
// A caller whose context is done gets its own error, the shared load is not
// tied to any one caller.
func (c *Catalog) BanlistCards(ctx context.Context) ([]card.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.banlistOnce.Do(func() {
		var tcg []card.Card
		if c.Dir != "" {
			if err := readJSON(context.WithoutCancel(ctx), filepath.Join(c.Dir, BanlistFile), false, &tcg); err != nil {
				c.banlistErr = err
				return
			}
		}
		c.banlistCards = merge(tcg, c.Cards)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.banlistCards, c.banlistErr
}

// BanList loads the ban list dataset and groups it
func (c *Catalog) BanList(ctx context.Context) (*BanList, error) {
	cards, err := c.BanlistCards(ctx)
	if err != nil {
		return nil, err
	}
	return GroupBanList(cards), nil
}

// GroupBanList splits cards by ban status. Unrestricted cards are dropped.
func GroupBanList(cards []card.Card) *BanList {
	b := &BanList{}
	for i := range cards {
		switch cards[i].BanStatus() {
		case card.Forbidden:
			b.Forbidden = append(b.Forbidden, cards[i])
		case card.Limited:
			b.Limited = append(b.Limited, cards[i])
		case card.SemiLimited:
			b.SemiLimited = append(b.SemiLimited, cards[i])
		}
	}
	return b
}

// merge keeps first-seen order; later lists override earlier ones by ID
func merge(lists ...[]card.Card) []card.Card {
	index := make(map[string]int)
	var out []card.Card
	for _, list := range lists {
		for _, cd := range list {
			if i, ok := index[cd.ID]; ok {
				out[i] = cd
				continue
			}
			index[cd.ID] = len(out)
			out = append(out, cd)
		}
	}
	return out
}
