package prediction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// RunKind identifies what an optimizer run was for
type RunKind string

const (
	RunKindTrain   RunKind = "train"
	RunKindRun     RunKind = "run"
	RunKindPredict RunKind = "predict"
)

// Run is one recorded optimizer invocation
type Run struct {
	ID          string    `json:"id"`
	Kind        RunKind   `json:"kind"`
	Strategy    string    `json:"strategy,omitempty"`
	Seed        uint64    `json:"seed"`
	DrawCount   int       `json:"draw_count"`
	BestFitness *float64  `json:"best_fitness,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// RunRepository stores the optimizer run log
type RunRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB, log zerolog.Logger) *RunRepository {
	return &RunRepository{
		db:  db,
		log: log.With().Str("repo", "optimizer_runs").Logger(),
	}
}

// Record inserts a run
func (r *RunRepository) Record(ctx context.Context, run Run) error {
	var best sql.NullFloat64
	if run.BestFitness != nil {
		best = sql.NullFloat64{Float64: *run.BestFitness, Valid: true}
	}
	var strategy sql.NullString
	if run.Strategy != "" {
		strategy = sql.NullString{String: run.Strategy, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO optimizer_runs (id, kind, strategy, seed, draw_count, best_fitness, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Kind), strategy, int64(run.Seed), run.DrawCount, best, run.DurationMs, run.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record optimizer run: %w", err)
	}
	return nil
}

// Recent returns the last n runs, newest first
func (r *RunRepository) Recent(ctx context.Context, n int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, strategy, seed, draw_count, best_fitness, duration_ms, created_at
		FROM optimizer_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query optimizer runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			run       Run
			kind      string
			strategy  sql.NullString
			seed      int64
			best      sql.NullFloat64
			createdAt int64
		)
		if err := rows.Scan(&run.ID, &kind, &strategy, &seed, &run.DrawCount, &best, &run.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan optimizer run: %w", err)
		}
		run.Kind = RunKind(kind)
		run.Strategy = strategy.String
		run.Seed = uint64(seed)
		if best.Valid {
			v := best.Float64
			run.BestFitness = &v
		}
		run.CreatedAt = time.Unix(createdAt, 0).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate optimizer runs: %w", err)
	}
	return runs, nil
}
