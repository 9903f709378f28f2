package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/arcanaland/ccgcatalog/internal/api/response"
	"github.com/arcanaland/ccgcatalog/internal/catalog"
)

// BanListHandler serves the grouped ban list.
type BanListHandler struct {
	source Source
	logger *zap.Logger
}

func NewBanListHandler(source Source, logger *zap.Logger) *BanListHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BanListHandler{source: source, logger: logger}
}

type banListSection struct {
	catalog.Section
	Count int `json:"count"`
}

// GetBanList returns the Banned, Limited and Semi-Limited sections.
func (h *BanListHandler) GetBanList(w http.ResponseWriter, r *http.Request) {
	bl, err := h.source.Current().BanList(r.Context())
	if err != nil {
		h.logger.Warn("ban list unavailable", zap.Error(err))
		response.ServiceUnavailable(w, catalog.ErrBanListUnavailable)
		return
	}

	sections := bl.Sections()
	out := make([]banListSection, len(sections))
	for i, s := range sections {
		out[i] = banListSection{Section: s, Count: len(s.Cards)}
	}
	response.Success(w, out)
}
