package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers statistics, optimizer and prediction routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/statistics", h.HandleGetStatistics)

	r.Route("/optimizer", func(r chi.Router) {
		r.Post("/train", h.HandleTrain)
		r.Get("/status", h.HandleStatus)
		r.Post("/run", h.HandleRun)
		r.Get("/stream", h.HandleStream)
	})

	r.Get("/predictions", h.HandlePredictions)
}
