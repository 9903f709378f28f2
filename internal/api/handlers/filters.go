package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/arcanaland/ccgcatalog/internal/api/response"
	"github.com/arcanaland/ccgcatalog/internal/card"
	"github.com/arcanaland/ccgcatalog/internal/filter"
	"github.com/arcanaland/ccgcatalog/internal/urlstate"
)

// FilterHandler exposes the filter panel controller: it turns query strings
// into panel state and panel state back into query strings.
type FilterHandler struct {
	source Source
}

func NewFilterHandler(source Source) *FilterHandler {
	return &FilterHandler{source: source}
}

// FilterRequest carries the current query string and, for apply, the
// panel state to write into it
type FilterRequest struct {
	Query string                `json:"query"`
	State *urlstate.FilterState `json:"state,omitempty"`
}

// FilterResult is the canonical query string with the panel it encodes
type FilterResult struct {
	Query string                `json:"query"`
	State *urlstate.FilterState `json:"state"`
}

// FilterOptions are the choices the panel offers
type FilterOptions struct {
	Categories   []card.Category  `json:"categories"`
	Icons        []string         `json:"icons"`
	CardTypes    []string         `json:"cardTypes"`
	MonsterTypes []string         `json:"monsterTypes"`
	Attributes   []string         `json:"attributes"`
	Archetypes   []string         `json:"archetypes"`
	Sets         []card.SetInfo   `json:"sets"`
	LinkArrows   []string         `json:"linkArrows"`
	Legal        []card.BanStatus `json:"legal"`
	SortKeys     []filter.SortKey `json:"sortKeys"`
}

// GetFilters reads the panel state out of the request's own query string.
func (h *FilterHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	snapshot := h.source.Current()
	sets := snapshot.Sets
	if sets == nil {
		sets = []card.SetInfo{}
	}

	response.Success(w, map[string]any{
		"state": urlstate.FromValues(r.URL.Query()),
		"options": FilterOptions{
			Categories:   card.Categories,
			Icons:        card.Icons,
			CardTypes:    card.CardTypes,
			MonsterTypes: card.MonsterTypes,
			Attributes:   card.Attributes,
			Archetypes:   snapshot.Archetypes(),
			Sets:         sets,
			LinkArrows:   card.ArrowCodes,
			Legal:        card.BanStatuses,
			SortKeys:     filter.SortKeys,
		},
	})
}

// ApplyFilters writes the submitted panel state into the submitted query.
func (h *FilterHandler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	req, values, err := decodeFilterRequest(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	if req.State == nil {
		response.BadRequest(w, errors.New("state is required"))
		return
	}

	req.State.Apply(values)
	response.Success(w, FilterResult{Query: values.Encode(), State: urlstate.FromValues(values)})
}

// ResetFilters clears the query down to the collapsed flag.
func (h *FilterHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	_, values, err := decodeFilterRequest(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	values, state := urlstate.FromValues(values).Reset()
	response.Success(w, FilterResult{Query: values.Encode(), State: state})
}

// ToggleFilters flips the collapsed flag of the panel.
func (h *FilterHandler) ToggleFilters(w http.ResponseWriter, r *http.Request) {
	_, values, err := decodeFilterRequest(r)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	state := urlstate.FromValues(values)
	state.ToggleCollapsed(values)
	response.Success(w, FilterResult{Query: values.Encode(), State: state})
}

// decodeFilterRequest reads an optional JSON body and parses its query
func decodeFilterRequest(r *http.Request) (*FilterRequest, url.Values, error) {
	req := &FilterRequest{}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("invalid request body: %w", err)
		}
	}

	values, err := url.ParseQuery(strings.TrimPrefix(req.Query, "?"))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid query string: %w", err)
	}
	return req, values, nil
}
