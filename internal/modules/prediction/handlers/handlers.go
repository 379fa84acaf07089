// Package handlers provides HTTP handlers for statistics, optimizer runs and predictions.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/prediction"
	"github.com/rs/zerolog"
)

const defaultPredictions = 5

// Handler handles prediction HTTP requests
type Handler struct {
	service         *prediction.Service
	defaultStrategy domain.Strategy
	originPatterns  []string
	log             zerolog.Logger
}

// NewHandler creates a new prediction handler
func NewHandler(service *prediction.Service, defaultStrategy domain.Strategy, log zerolog.Logger) *Handler {
	return &Handler{
		service:         service,
		defaultStrategy: defaultStrategy,
		log:             log.With().Str("handler", "prediction").Logger(),
	}
}

// SetOriginPatterns sets the host patterns allowed to open the optimizer stream
// from another origin. Without patterns only same-origin clients are accepted.
func (h *Handler) SetOriginPatterns(patterns []string) {
	h.originPatterns = patterns
}

type runRequest struct {
	N              int    `json:"n"`
	Seed           uint64 `json:"seed"`
	Generations    *int   `json:"generations,omitempty"`
	PopulationSize *int   `json:"population_size,omitempty"`
}

// HandleGetStatistics handles GET /api/statistics
func (h *Handler) HandleGetStatistics(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Statistics(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build statistics")
		h.writeError(w, http.StatusInternalServerError, "Failed to build statistics")
		return
	}
	h.writeData(w, http.StatusOK, report)
}

// HandleTrain handles POST /api/optimizer/train
func (h *Handler) HandleTrain(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Train(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to train optimizer")
		h.writeError(w, http.StatusInternalServerError, "Failed to train optimizer")
		return
	}
	h.writeData(w, http.StatusOK, snap)
}

// HandleStatus handles GET /api/optimizer/status
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		h.writeError(w, http.StatusNotFound, "Optimizer not trained")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get optimizer status")
		h.writeError(w, http.StatusInternalServerError, "Failed to get optimizer status")
		return
	}
	h.writeData(w, http.StatusOK, status)
}

// HandleRun handles POST /api/optimizer/run
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	req := runRequest{N: defaultPredictions}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if req.N < 1 || req.N > prediction.MaxPredictions {
		h.writeError(w, http.StatusBadRequest, "n must be between 1 and 10")
		return
	}
	if req.PopulationSize != nil && (*req.PopulationSize < 1 || *req.PopulationSize > prediction.MaxPopulationSize) {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("population_size must be between 1 and %d", prediction.MaxPopulationSize))
		return
	}
	if req.Generations != nil && (*req.Generations < 0 || *req.Generations > prediction.MaxGenerations) {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("generations must be between 0 and %d", prediction.MaxGenerations))
		return
	}

	result, err := h.service.RunOptimizer(r.Context(), prediction.RunOptions{
		N:              req.N,
		Seed:           req.Seed,
		Generations:    req.Generations,
		PopulationSize: req.PopulationSize,
	})
	if errors.Is(err, domain.ErrInvalidConfig) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Optimizer run failed")
		h.writeError(w, http.StatusInternalServerError, "Optimizer run failed")
		return
	}
	h.writeData(w, http.StatusOK, result)
}

// HandlePredictions handles GET /api/predictions?strategy=balanced&n=5&seed=
func (h *Handler) HandlePredictions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	strategy := h.defaultStrategy
	if s := query.Get("strategy"); s != "" {
		parsed, err := domain.ParseStrategy(s)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategy = parsed
	}

	n := defaultPredictions
	if s := query.Get("n"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 || parsed > prediction.MaxPredictions {
			h.writeError(w, http.StatusBadRequest, "n must be between 1 and 10")
			return
		}
		n = parsed
	}

	seed, err := parseSeed(query.Get("seed"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "seed must be a non-negative integer")
		return
	}

	result, err := h.service.Predict(r.Context(), strategy, n, seed)
	if errors.Is(err, domain.ErrInvalidConfig) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("strategy", string(strategy)).Msg("Prediction failed")
		h.writeError(w, http.StatusInternalServerError, "Prediction failed")
		return
	}
	h.writeData(w, http.StatusOK, result)
}

func parseSeed(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

// writeData wraps data in the standard envelope
func (h *Handler) writeData(w http.ResponseWriter, status int, data interface{}) {
	h.writeJSON(w, status, map[string]interface{}{
		"data": data,
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
