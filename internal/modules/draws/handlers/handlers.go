// Package handlers provides HTTP handlers for draw history.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/draws"
	"github.com/rs/zerolog"
)

const (
	defaultLatest = 10
	maxLatest     = 100
)

// Handler handles draw HTTP requests
type Handler struct {
	repo *draws.Repository
	log  zerolog.Logger
}

// NewHandler creates a new draws handler
func NewHandler(repo *draws.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "draws").Logger(),
	}
}

type addDrawRequest struct {
	Date    string `json:"date"`
	Numbers []int  `json:"numbers"`
	Stars   []int  `json:"stars"`
}

// HandleGetLatest handles GET /api/draws/latest?n=10
func (h *Handler) HandleGetLatest(w http.ResponseWriter, r *http.Request) {
	n := defaultLatest
	if param := r.URL.Query().Get("n"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed < 1 || parsed > maxLatest {
			h.writeError(w, http.StatusBadRequest, "n must be an integer between 1 and 100")
			return
		}
		n = parsed
	}

	latest, err := h.repo.Latest(r.Context(), n)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get latest draws")
		h.writeError(w, http.StatusInternalServerError, "Failed to get latest draws")
		return
	}

	total, err := h.repo.Count(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to count draws")
		h.writeError(w, http.StatusInternalServerError, "Failed to count draws")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"draws": latest,
			"count": len(latest),
			"total": total,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleAddDraw handles POST /api/draws
func (h *Handler) HandleAddDraw(w http.ResponseWriter, r *http.Request) {
	var req addDrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := draws.ParseDate(req.Date)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.repo.Add(r.Context(), domain.Draw{Date: date, Primary: req.Numbers, Secondary: req.Stars})
	switch {
	case errors.Is(err, domain.ErrInvalidDraw):
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	case draws.IsDuplicate(err):
		h.writeError(w, http.StatusConflict, "A draw with this date already exists")
		return
	case err != nil:
		h.log.Error().Err(err).Msg("Failed to add draw")
		h.writeError(w, http.StatusInternalServerError, "Failed to add draw")
		return
	}

	h.log.Info().Int64("id", stored.ID).Msg("Draw added")

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": stored,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
