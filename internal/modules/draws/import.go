package draws

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/rs/zerolog"
)

// Accepted date layouts, tried in order
var dateLayouts = []string{DateLayout, "02/01/2006", "2006/01/02"}

// ImportResult summarizes one CSV import
type ImportResult struct {
	Rows       int `json:"rows"`
	Imported   int `json:"imported"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
}

// Importer loads draws from CSV rows of the form date,n1..nk1,s1..sk2
type Importer struct {
	repo *Repository
	log  zerolog.Logger
}

// NewImporter creates an importer writing into repo
func NewImporter(repo *Repository, log zerolog.Logger) *Importer {
	return &Importer{
		repo: repo,
		log:  log.With().Str("component", "draw_importer").Logger(),
	}
}

// ImportFile imports the CSV file at path
func (i *Importer) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return i.Import(ctx, bufio.NewReaderSize(f, 1<<16))
}

// Import parses every row and stores the valid ones in a single transaction.
// A leading header row is detected and ignored; invalid rows are skipped with a warning.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	game := i.repo.Game()
	width := 1 + game.PrimaryCount + game.SecondaryCount

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{}
	var parsed []domain.Draw

	for line := 1; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		if line == 1 && isHeader(rec) {
			continue
		}
		result.Rows++

		draw, err := parseRecord(game, rec, width)
		if err != nil {
			result.Skipped++
			i.log.Warn().Err(err).Int("line", line).Msg("Skipping invalid draw row")
			continue
		}
		parsed = append(parsed, draw)
	}

	inserted, err := i.repo.AddBatch(ctx, parsed)
	if err != nil {
		return nil, err
	}
	result.Imported = inserted
	result.Duplicates = len(parsed) - inserted

	i.log.Info().
		Int("rows", result.Rows).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("duplicates", result.Duplicates).
		Msg("Draw import completed")

	return result, nil
}

// isHeader reports whether the first symbol column is not numeric
func isHeader(rec []string) bool {
	if len(rec) < 2 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	return err != nil
}

func parseRecord(game domain.GameConfig, rec []string, width int) (domain.Draw, error) {
	if len(rec) != width {
		return domain.Draw{}, fmt.Errorf("%w: expected %d columns, got %d", domain.ErrInvalidDraw, width, len(rec))
	}

	date, err := ParseDate(rec[0])
	if err != nil {
		return domain.Draw{}, err
	}

	symbols := make([]int, 0, width-1)
	for _, field := range rec[1:] {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return domain.Draw{}, fmt.Errorf("%w: invalid symbol %q", domain.ErrInvalidDraw, field)
		}
		symbols = append(symbols, v)
	}

	return domain.NewDraw(game, symbols[:game.PrimaryCount], symbols[game.PrimaryCount:], date)
}

// ParseDate parses a draw date; an empty string means undated
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidDraw, s)
}

// IsDuplicate reports whether err was caused by an already stored draw
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateDraw)
}
