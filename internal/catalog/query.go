package catalog

import (
	"github.com/arcanaland/ccgcatalog/internal/card"
	"github.com/arcanaland/ccgcatalog/internal/filter"
	"github.com/arcanaland/ccgcatalog/internal/search"
)

// Results runs the listing pipeline over the snapshot. With a text query
// the search hits form the candidate pool; the predicate and the sort are
// applied to the pool either way.
func (c *Catalog) Results(q *filter.Query, key filter.SortKey, dir filter.Direction, opts search.Options) []card.Card {
	pool := c.Cards
	if q.Text != "" {
		pool = search.Cards(c.Cards, q.Text, opts)
	}
	return filter.Sort(filter.Apply(pool, q), key, dir)
}
