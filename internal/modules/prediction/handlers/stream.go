package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/eurogenius/internal/modules/genetic"
	"github.com/aristath/eurogenius/internal/modules/prediction"
	"nhooyr.io/websocket"
)

const writeWait = 10 * time.Second

// streamMessage is one frame of the optimizer stream
type streamMessage struct {
	Type string      `json:"type"` // generation, result or error
	Data interface{} `json:"data"`
}

// HandleStream handles GET /api/optimizer/stream?n=5&seed=&generations=
// Each generation's statistics are sent as they are recorded, followed by the final result.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	opts, err := parseStreamOptions(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Cross-origin clients are rejected unless their host matches a configured pattern
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to accept websocket")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	// Reads are not expected; CloseRead handles control frames and cancels ctx on close
	ctx := conn.CloseRead(r.Context())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts.Observer = func(stats genetic.GenerationStats) {
		if err := h.send(ctx, conn, streamMessage{Type: "generation", Data: stats}); err != nil {
			h.log.Debug().Err(err).Msg("Stream client went away")
			cancel()
		}
	}

	result, err := h.service.RunOptimizer(ctx, opts)
	if err != nil {
		_ = h.send(ctx, conn, streamMessage{Type: "error", Data: err.Error()})
		conn.Close(websocket.StatusInternalError, "optimizer run failed")
		return
	}

	if err := h.send(ctx, conn, streamMessage{Type: "result", Data: result}); err != nil {
		h.log.Debug().Err(err).Msg("Failed to send stream result")
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func (h *Handler) send(ctx context.Context, conn *websocket.Conn, msg streamMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal stream message: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()

	return conn.Write(writeCtx, websocket.MessageText, data)
}

func parseStreamOptions(r *http.Request) (prediction.RunOptions, error) {
	query := r.URL.Query()
	opts := prediction.RunOptions{N: defaultPredictions}

	if s := query.Get("n"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > prediction.MaxPredictions {
			return opts, fmt.Errorf("n must be between 1 and 10")
		}
		opts.N = n
	}

	seed, err := parseSeed(query.Get("seed"))
	if err != nil {
		return opts, fmt.Errorf("seed must be a non-negative integer")
	}
	opts.Seed = seed

	if s := query.Get("generations"); s != "" {
		g, err := strconv.Atoi(s)
		if err != nil || g < 0 || g > prediction.MaxGenerations {
			return opts, fmt.Errorf("generations must be between 0 and %d", prediction.MaxGenerations)
		}
		opts.Generations = &g
	}
	return opts, nil
}
