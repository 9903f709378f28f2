package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arcanaland/ccgcatalog/internal/api/handlers"
	"github.com/arcanaland/ccgcatalog/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	if s.assetsDir != "" {
		s.router.Handle("/assets/*", http.FileServer(http.Dir(s.assetsDir)))
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		cardHandler := handlers.NewCardHandler(s.source, s.images, s.search, s.pageSize)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.ListCards)
			r.Get("/{cardID}", cardHandler.GetCard)
			r.Get("/{cardID}/image", cardHandler.GetCardImage)
		})
		r.Get("/archetypes", cardHandler.GetArchetypes)

		setHandler := handlers.NewSetHandler(s.source)
		r.Route("/sets", func(r chi.Router) {
			r.Get("/", setHandler.ListSets)
			r.Get("/{setCode}", setHandler.GetSet)
		})
		r.Get("/news", setHandler.ListNews)

		banListHandler := handlers.NewBanListHandler(s.source, s.logger)
		r.Get("/banlist", banListHandler.GetBanList)

		filterHandler := handlers.NewFilterHandler(s.source)
		r.Route("/filters", func(r chi.Router) {
			r.Get("/", filterHandler.GetFilters)
			r.Post("/apply", filterHandler.ApplyFilters)
			r.Post("/reset", filterHandler.ResetFilters)
			r.Post("/toggle", filterHandler.ToggleFilters)
		})
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "ccgcatalog-api",
		"cards":   len(s.source.Current().Cards),
	})
}
