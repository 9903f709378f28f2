package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/ccgcatalog/internal/card"
)

// Data file names inside a catalog directory
const (
	CardsFile   = "cards.json"
	SetsFile    = "sets.json"
	NewsFile    = "news.json"
	BanlistFile = "tcg-cards.json"
)

var (
	ErrCardNotFound = errors.New("card not found")
	ErrSetNotFound  = errors.New("set not found")
)

// Catalog is one loaded snapshot of the data directory. It is never
// mutated after Load returns, except for the lazily loaded ban list.
type Catalog struct {
	Dir   string
	Cards []card.Card
	Sets  []card.SetInfo
	News  []card.NewsItem

	cardsByID  map[string]int
	setsByCode map[string]int
	archetypes []string

	banlistOnce  sync.Once
	banlistCards []card.Card
	banlistErr   error
}

// Load reads cards, sets and news from dir in parallel. cards.json is
// required; the other files may be missing.
func Load(ctx context.Context, dir string) (*Catalog, error) {
	c := &Catalog{Dir: dir}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readJSON(ctx, filepath.Join(dir, CardsFile), false, &c.Cards)
	})
	g.Go(func() error {
		return readJSON(ctx, filepath.Join(dir, SetsFile), true, &c.Sets)
	})
	g.Go(func() error {
		return readJSON(ctx, filepath.Join(dir, NewsFile), true, &c.News)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.buildIndexes()
	return c, nil
}

// New builds a catalog from in-memory data
func New(cards []card.Card, sets []card.SetInfo, news []card.NewsItem) *Catalog {
	c := &Catalog{Cards: cards, Sets: sets, News: news}
	c.buildIndexes()
	return c
}

func (c *Catalog) buildIndexes() {
	c.cardsByID = make(map[string]int, len(c.Cards))
	for i, cd := range c.Cards {
		c.cardsByID[cd.ID] = i
	}

	c.setsByCode = make(map[string]int, len(c.Sets))
	for i, s := range c.Sets {
		c.setsByCode[s.Code] = i
	}

	seen := make(map[string]bool)
	for _, cd := range c.Cards {
		if cd.Archetype != "" && !seen[cd.Archetype] {
			seen[cd.Archetype] = true
			c.archetypes = append(c.archetypes, cd.Archetype)
		}
	}
	sort.Strings(c.archetypes)
}

// Card returns the card with the given ID
func (c *Catalog) Card(id string) (*card.Card, error) {
	i, ok := c.cardsByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	return &c.Cards[i], nil
}

// Set returns the set with the given code
func (c *Catalog) Set(code string) (*card.SetInfo, error) {
	i, ok := c.setsByCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSetNotFound, code)
	}
	return &c.Sets[i], nil
}

// SetCards returns the cards whose set string starts with the set code
func (c *Catalog) SetCards(code string) []card.Card {
	var out []card.Card
	prefix := strings.ToLower(code)
	for _, cd := range c.Cards {
		if strings.HasPrefix(strings.ToLower(cd.Set), prefix) {
			out = append(out, cd)
		}
	}
	return out
}

// Archetypes returns the distinct archetypes, sorted
func (c *Catalog) Archetypes() []string {
	return c.archetypes
}

// readJSON decodes path into v. A missing optional file leaves v untouched.
func readJSON(ctx context.Context, path string, optional bool, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}
	return nil
}
