package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all draw routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/draws", func(r chi.Router) {
		r.Get("/latest", h.HandleGetLatest)
		r.Post("/", h.HandleAddDraw)
	})
}
