package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcanaland/ccgcatalog/internal/api/response"
	"github.com/arcanaland/ccgcatalog/internal/catalog"
	"github.com/arcanaland/ccgcatalog/internal/filter"
	"github.com/arcanaland/ccgcatalog/internal/render"
	"github.com/arcanaland/ccgcatalog/internal/search"
	"github.com/arcanaland/ccgcatalog/internal/urlstate"
	"github.com/arcanaland/ccgcatalog/internal/viewer"
)

// MaxPageSize caps the pageSize parameter
const MaxPageSize = 500

// Source yields the catalog snapshot a request works on
type Source interface {
	Current() *catalog.Catalog
}

// CardHandler handles card listing and lookup requests.
type CardHandler struct {
	source   Source
	images   *viewer.Viewer
	search   search.Options
	pageSize int
}

// NewCardHandler creates a new CardHandler. pageSize is used when the
// request does not carry one.
func NewCardHandler(source Source, images *viewer.Viewer, opts search.Options, pageSize int) *CardHandler {
	if pageSize <= 0 {
		pageSize = urlstate.DefaultPageSize
	}
	return &CardHandler{source: source, images: images, search: opts, pageSize: pageSize}
}

type listMeta struct {
	Sort filter.SortKey   `json:"sort"`
	Dir  filter.Direction `json:"dir"`
	View urlstate.Layout  `json:"view"`
}

// ListCards answers the cards page: search, filter, sort, then one window.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	view := urlstate.ParseQuery(values)
	if !values.Has(urlstate.KeyPageSize) {
		view.PageSize = h.pageSize
	}
	if view.PageSize > MaxPageSize {
		view.PageSize = MaxPageSize
	}

	results := h.source.Current().Results(&view.Query, view.Sort, view.Dir, h.search)
	win := render.Paginate(results, view.Page, view.PageSize)

	response.Page(w, response.PageResponse{
		Data:       win.Items,
		Page:       win.Page,
		PageSize:   win.PageSize,
		TotalCount: win.Total,
		TotalPages: win.Pages,
		Meta:       listMeta{Sort: view.Sort, Dir: view.Dir, View: view.Layout},
	})
}

// GetCard returns a card by ID.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		response.BadRequest(w, errors.New("card ID is required"))
		return
	}

	c, err := h.source.Current().Card(cardID)
	if errors.Is(err, catalog.ErrCardNotFound) {
		response.NotFound(w, err)
		return
	}
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, c)
}

// GetCardImage serves the image file of a card.
func (h *CardHandler) GetCardImage(w http.ResponseWriter, r *http.Request) {
	c, err := h.source.Current().Card(chi.URLParam(r, "cardID"))
	if err != nil {
		response.NotFound(w, err)
		return
	}

	if h.images == nil {
		response.NotFound(w, viewer.ErrImageUnavailable)
		return
	}
	path, err := h.images.ImagePath(c.Image)
	if err != nil {
		response.NotFound(w, err)
		return
	}

	http.ServeFile(w, r, path)
}

// GetArchetypes returns the distinct archetypes, sorted.
func (h *CardHandler) GetArchetypes(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, h.source.Current().Archetypes())
}
