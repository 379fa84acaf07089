package ensemble

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// ErrPredictorUnavailable is returned when no probability source is configured or reachable
var ErrPredictorUnavailable = errors.New("predictor unavailable")

// Prediction holds per-symbol probabilities; index = symbol, index 0 unused
type Prediction struct {
	Primary   []float64 `json:"primary"`
	Secondary []float64 `json:"secondary"`
}

// Predictor turns a window of recent draws into probability vectors
type Predictor interface {
	Predict(ctx context.Context, recent []domain.Draw) (*Prediction, error)
}

// NoopPredictor is used when no predictor service is configured
type NoopPredictor struct{}

// Predict always fails with ErrPredictorUnavailable
func (NoopPredictor) Predict(context.Context, []domain.Draw) (*Prediction, error) {
	return nil, ErrPredictorUnavailable
}

// HTTPPredictor calls a remote sequence-prediction service
type HTTPPredictor struct {
	client *resty.Client
	log    zerolog.Logger
}

type predictRequest struct {
	Draws []predictDraw `json:"draws"`
}

type predictDraw struct {
	Numbers []int `json:"numbers"`
	Stars   []int `json:"stars"`
}

// NewHTTPPredictor creates a client for baseURL. Requests POST the recent draws to /predict.
func NewHTTPPredictor(baseURL string, timeout time.Duration, log zerolog.Logger) *HTTPPredictor {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(1)

	return &HTTPPredictor{
		client: client,
		log:    log.With().Str("component", "predictor_client").Logger(),
	}
}

// Predict requests probability vectors for the given window
func (p *HTTPPredictor) Predict(ctx context.Context, recent []domain.Draw) (*Prediction, error) {
	req := predictRequest{Draws: make([]predictDraw, len(recent))}
	for i, d := range recent {
		req.Draws[i] = predictDraw{Numbers: d.Primary, Stars: d.Secondary}
	}

	var result Prediction
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/predict")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPredictorUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: predictor returned status %d", ErrPredictorUnavailable, resp.StatusCode())
	}

	p.log.Debug().
		Int("window", len(recent)).
		Dur("latency", resp.Time()).
		Msg("Received prediction")

	return &result, nil
}
