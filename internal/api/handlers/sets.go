package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcanaland/ccgcatalog/internal/api/response"
	"github.com/arcanaland/ccgcatalog/internal/card"
	"github.com/arcanaland/ccgcatalog/internal/catalog"
)

// SetHandler handles the releases and home page data.
type SetHandler struct {
	source Source
}

func NewSetHandler(source Source) *SetHandler {
	return &SetHandler{source: source}
}

// SetDetail is a set with the cards printed in it
type SetDetail struct {
	card.SetInfo
	Cards []card.Card `json:"cards"`
}

// ListSets returns every set in file order.
func (h *SetHandler) ListSets(w http.ResponseWriter, _ *http.Request) {
	sets := h.source.Current().Sets
	if sets == nil {
		sets = []card.SetInfo{}
	}
	response.Success(w, sets)
}

// GetSet returns one set with its cards.
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	setCode := chi.URLParam(r, "setCode")
	if setCode == "" {
		response.BadRequest(w, errors.New("set code is required"))
		return
	}

	snapshot := h.source.Current()
	s, err := snapshot.Set(setCode)
	if errors.Is(err, catalog.ErrSetNotFound) {
		response.NotFound(w, err)
		return
	}
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, SetDetail{SetInfo: *s, Cards: snapshot.SetCards(s.Code)})
}

// ListNews returns the news feed.
func (h *SetHandler) ListNews(w http.ResponseWriter, _ *http.Request) {
	news := h.source.Current().News
	if news == nil {
		news = []card.NewsItem{}
	}
	response.Success(w, news)
}
