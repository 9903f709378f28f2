package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/arcanaland/ccgcatalog/internal/card"
	"github.com/arcanaland/ccgcatalog/internal/catalog"
	"github.com/arcanaland/ccgcatalog/internal/urlstate"
)

func intp(n int) *int { return &n }

func testCards() []card.Card {
	return []card.Card{
		{ID: "A", Name: "Stardrake Herald", Image: "/assets/cards/A.png", Set: "CCG-01 Brave X", Archetype: "Stardrake",
			Category: card.Monster, Level: intp(7), ATK: intp(2500), DEF: intp(2000), Legal: &card.Legal{Banned: true}},
		{ID: "B", Name: "Tainted Pact", Set: "TATA-001 Tainted Tails", Category: card.Spell, Icon: "Quick-Play",
			Legal: &card.Legal{Limited: true}},
		{ID: "C", Name: "Gearwork Link", Set: "CCG-01 Brave X", Archetype: "Gearwork", Category: card.Monster,
			LinkRating: intp(2), LinkArrows: []int{3, 5}, ATK: intp(1600)},
	}
}

func newTestServer(t *testing.T, cfg *Config) http.Handler {
	t.Helper()
	sets := []card.SetInfo{{Code: "CCG-01", Name: "Brave X"}, {Code: "TATA-001", Name: "Tainted Tails"}}
	news := []card.NewsItem{{Title: "Welcome", Date: "2025-01-01"}}
	store := catalog.NewStaticStore(catalog.New(testCards(), sets, news))
	return NewServer(cfg, store, zaptest.NewLogger(t)).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type page struct {
	Data       []card.Card `json:"data"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalCount int         `json:"total_count"`
	TotalPages int         `json:"total_pages"`
	Meta       struct {
		Sort string `json:"sort"`
		Dir  string `json:"dir"`
		View string `json:"view"`
	} `json:"meta"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func ids(cards []card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cards":3`)
}

func TestListCards(t *testing.T) {
	h := newTestServer(t, nil)

	rec := get(t, h, "/api/v1/cards")
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[page](t, rec)
	assert.Equal(t, []string{"C", "A", "B"}, ids(p.Data))
	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, urlstate.DefaultPageSize, p.PageSize)
	assert.Equal(t, "name", p.Meta.Sort)
	assert.Equal(t, "asc", p.Meta.Dir)
	assert.Equal(t, "grid", p.Meta.View)

	p = decode[page](t, get(t, h, "/api/v1/cards?category=Monster&sort=atk"))
	assert.Equal(t, []string{"A", "C"}, ids(p.Data))
	assert.Equal(t, "desc", p.Meta.Dir)

	p = decode[page](t, get(t, h, "/api/v1/cards?linkArrows=BR&linkArrows=5"))
	assert.Equal(t, []string{"C"}, ids(p.Data))

	p = decode[page](t, get(t, h, "/api/v1/cards?atkMin=abc&legal=banned&legal=limited"))
	assert.Equal(t, []string{"A", "B"}, ids(p.Data), "malformed bounds are dropped")

	p = decode[page](t, get(t, h, "/api/v1/cards?q=tainted"))
	assert.Equal(t, []string{"B"}, ids(p.Data))
}

func TestListCards_Paging(t *testing.T) {
	h := newTestServer(t, &Config{Port: 8080, PageSize: 2})

	p := decode[page](t, get(t, h, "/api/v1/cards"))
	assert.Len(t, p.Data, 2)
	assert.Equal(t, 2, p.TotalPages)

	p = decode[page](t, get(t, h, "/api/v1/cards?page=2"))
	assert.Equal(t, []string{"B"}, ids(p.Data))

	p = decode[page](t, get(t, h, "/api/v1/cards?pageSize=1&page=3"))
	assert.Equal(t, []string{"B"}, ids(p.Data))
}

func TestGetCard(t *testing.T) {
	h := newTestServer(t, nil)

	rec := get(t, h, "/api/v1/cards/A")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stardrake Herald")

	rec = get(t, h, "/api/v1/cards/NOPE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "card not found")
}

func TestCardImage(t *testing.T) {
	assets := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "assets", "cards"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "assets", "cards", "A.png"), []byte("png-bytes"), 0o644))

	cfg := DefaultConfig()
	cfg.AssetsDir = assets
	h := newTestServer(t, cfg)

	rec := get(t, h, "/api/v1/cards/A/image")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = get(t, h, "/api/v1/cards/B/image")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "image unavailable")

	rec = get(t, h, "/assets/cards/A.png")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetsNewsArchetypes(t *testing.T) {
	h := newTestServer(t, nil)

	rec := get(t, h, "/api/v1/sets/CCG-01")
	require.Equal(t, http.StatusOK, rec.Code)
	var set struct {
		Data struct {
			Code  string      `json:"code"`
			Cards []card.Card `json:"cards"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	assert.Equal(t, "CCG-01", set.Data.Code)
	assert.Equal(t, []string{"A", "C"}, ids(set.Data.Cards))

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/v1/sets/ZZZ").Code)
	assert.Contains(t, get(t, h, "/api/v1/sets").Body.String(), "Tainted Tails")
	assert.Contains(t, get(t, h, "/api/v1/news").Body.String(), "Welcome")
	assert.JSONEq(t, `{"data":["Gearwork","Stardrake"]}`, get(t, h, "/api/v1/archetypes").Body.String())
}

func TestBanList(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/api/v1/banlist")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []struct {
			Title string `json:"title"`
			Count int    `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, "Banned", body.Data[0].Title)
	assert.Equal(t, 1, body.Data[0].Count)
	assert.Equal(t, 1, body.Data[1].Count)
	assert.Equal(t, 0, body.Data[2].Count)
}

func TestBanList_LoadFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.CardsFile), []byte(`[]`), 0o644))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	c, err := catalog.Load(ctx, dir)
	require.NoError(t, err)

	h := NewServer(nil, catalog.NewStaticStore(c), zaptest.NewLogger(t)).Handler()
	rec := get(t, h, "/api/v1/banlist")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to load ban list.")
}

func TestFilters(t *testing.T) {
	h := newTestServer(t, nil)

	rec := get(t, h, "/api/v1/filters?category=Spell&atkMin=100&filters=0")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Data struct {
			State   urlstate.FilterState `json:"state"`
			Options struct {
				Archetypes []string `json:"archetypes"`
				LinkArrows []string `json:"linkArrows"`
			} `json:"options"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Spell", got.Data.State.Category)
	assert.True(t, got.Data.State.ATK.Enabled)
	assert.True(t, got.Data.State.Collapsed)
	assert.Equal(t, []string{"Gearwork", "Stardrake"}, got.Data.Options.Archetypes)
	assert.Len(t, got.Data.Options.LinkArrows, 8)
}

type filterResult struct {
	Data struct {
		Query string               `json:"query"`
		State urlstate.FilterState `json:"state"`
	} `json:"data"`
}

func TestApplyFilters(t *testing.T) {
	h := newTestServer(t, nil)

	body := `{"query":"?sort=atk&category=Trap&atkMin=5",
		"state":{"category":"Monster","archetype":["Stardrake","Gearwork"],
		         "atk":{"enabled":false,"min":5},"def":{"enabled":true,"max":2000}}}`
	rec := post(t, h, "/api/v1/filters/apply", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[filterResult](t, rec)
	assert.Equal(t, "archetype=Stardrake&archetype=Gearwork&category=Monster&defMax=2000&filters=1&sort=atk", res.Data.Query)
	assert.True(t, res.Data.State.DEF.Enabled)
	assert.False(t, res.Data.State.ATK.Enabled)

	assert.Equal(t, http.StatusBadRequest, post(t, h, "/api/v1/filters/apply", `{"query":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, h, "/api/v1/filters/apply", `{`).Code)
}

func TestResetAndToggleFilters(t *testing.T) {
	h := newTestServer(t, nil)

	res := decode[filterResult](t, post(t, h, "/api/v1/filters/reset", `{"query":"category=Spell&filters=0&sort=atk"}`))
	assert.Equal(t, "filters=0", res.Data.Query)
	assert.True(t, res.Data.State.Collapsed)

	res = decode[filterResult](t, post(t, h, "/api/v1/filters/toggle", `{"query":"category=Spell"}`))
	assert.Equal(t, "category=Spell&filters=0", res.Data.Query)
	assert.True(t, res.Data.State.Collapsed)
}

func TestPostRequiresJSON(t *testing.T) {
	h := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/filters/reset", strings.NewReader("query=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
