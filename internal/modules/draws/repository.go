// Package draws provides storage and import of historical draws.
package draws

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/eurogenius/internal/database"
	"github.com/aristath/eurogenius/internal/domain"
	"github.com/rs/zerolog"
)

// DateLayout is the storage and wire format of draw dates
const DateLayout = "2006-01-02"

// ErrDuplicateDraw is returned when a draw with the same date is already stored
var ErrDuplicateDraw = errors.New("draw already exists")

// drawColumns must match scanDraw
const drawColumns = `id, draw_date, primary_numbers, secondary_numbers`

// Repository handles draw database operations
type Repository struct {
	db   *sql.DB
	game domain.GameConfig
	log  zerolog.Logger
}

// NewRepository creates a new draw repository
func NewRepository(db *sql.DB, game domain.GameConfig, log zerolog.Logger) *Repository {
	return &Repository{
		db:   db,
		game: game,
		log:  log.With().Str("repo", "draws").Logger(),
	}
}

// Game returns the layout draws are validated against
func (r *Repository) Game() domain.GameConfig {
	return r.game
}

// Add validates and stores one draw, returning it with its assigned ID
func (r *Repository) Add(ctx context.Context, draw domain.Draw) (domain.Draw, error) {
	normalized, err := domain.NewDraw(r.game, draw.Primary, draw.Secondary, draw.Date)
	if err != nil {
		return domain.Draw{}, err
	}

	var id int64
	err = database.WithTransaction(r.db, func(tx *sql.Tx) error {
		var insertErr error
		id, insertErr = insertDraw(ctx, tx, normalized)
		return insertErr
	})
	if err != nil {
		return domain.Draw{}, fmt.Errorf("failed to add draw: %w", err)
	}

	normalized.ID = id
	r.log.Debug().Int64("id", id).Ints("numbers", normalized.Primary).Msg("Draw stored")
	return normalized, nil
}

// AddBatch stores draws in one transaction. Draws whose date already exists are skipped;
// the number of inserted rows is returned.
func (r *Repository) AddBatch(ctx context.Context, draws []domain.Draw) (int, error) {
	inserted := 0
	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		for _, d := range draws {
			normalized, err := domain.NewDraw(r.game, d.Primary, d.Secondary, d.Date)
			if err != nil {
				return err
			}
			if _, err := insertDraw(ctx, tx, normalized); err != nil {
				if errors.Is(err, ErrDuplicateDraw) {
					continue
				}
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add draws: %w", err)
	}
	return inserted, nil
}

func insertDraw(ctx context.Context, tx *sql.Tx, d domain.Draw) (int64, error) {
	var date interface{}
	if d.Date != nil {
		date = d.Date.Format(DateLayout)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO draws (draw_date, primary_numbers, secondary_numbers, created_at)
		VALUES (?, ?, ?, ?)
	`, date, encodeSymbols(d.Primary), encodeSymbols(d.Secondary), time.Now().Unix())
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateDraw, date)
	}
	return res.LastInsertId()
}

// All returns every stored draw in chronological order; undated draws follow dated ones
// in insertion order
func (r *Repository) All(ctx context.Context) ([]domain.Draw, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+drawColumns+` FROM draws
		ORDER BY CASE WHEN draw_date IS NULL THEN 1 ELSE 0 END, draw_date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}
	defer rows.Close()

	return scanDraws(rows)
}

// Latest returns the n most recent draws, newest first
func (r *Repository) Latest(ctx context.Context, n int) ([]domain.Draw, error) {
	if n <= 0 {
		return []domain.Draw{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+drawColumns+` FROM draws
		ORDER BY CASE WHEN draw_date IS NULL THEN 1 ELSE 0 END DESC, draw_date DESC, id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest draws: %w", err)
	}
	defer rows.Close()

	return scanDraws(rows)
}

// Count returns the number of stored draws
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM draws").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return count, nil
}

func scanDraws(rows *sql.Rows) ([]domain.Draw, error) {
	draws := make([]domain.Draw, 0)
	for rows.Next() {
		d, err := scanDraw(rows)
		if err != nil {
			return nil, err
		}
		draws = append(draws, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draws: %w", err)
	}
	return draws, nil
}

func scanDraw(rows *sql.Rows) (domain.Draw, error) {
	var (
		d         domain.Draw
		date      sql.NullString
		primary   string
		secondary string
	)
	if err := rows.Scan(&d.ID, &date, &primary, &secondary); err != nil {
		return domain.Draw{}, fmt.Errorf("failed to scan draw: %w", err)
	}

	var err error
	if d.Primary, err = decodeSymbols(primary); err != nil {
		return domain.Draw{}, fmt.Errorf("draw %d: %w", d.ID, err)
	}
	if d.Secondary, err = decodeSymbols(secondary); err != nil {
		return domain.Draw{}, fmt.Errorf("draw %d: %w", d.ID, err)
	}
	if date.Valid {
		parsed, err := time.Parse(DateLayout, date.String)
		if err != nil {
			return domain.Draw{}, fmt.Errorf("draw %d: invalid date %q: %w", d.ID, date.String, err)
		}
		d.Date = &parsed
	}
	return d, nil
}

func encodeSymbols(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func decodeSymbols(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid symbol %q: %w", p, err)
		}
		values[i] = v
	}
	return values, nil
}
