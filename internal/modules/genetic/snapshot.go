package genetic

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/aristath/eurogenius/internal/modules/statistics"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotVersion is bumped whenever the encoded layout changes
const SnapshotVersion = 1

// PairScore is one entry of the pair table in its encoded form
type PairScore struct {
	A     int     `msgpack:"a" json:"a"`
	B     int     `msgpack:"b" json:"b"`
	Score float64 `msgpack:"score" json:"score"`
}

// Snapshot is the trained optimizer state: the statistics tables plus the run
// parameters they were trained with.
type Snapshot struct {
	Version              int               `msgpack:"version" json:"version"`
	Game                 domain.GameConfig `msgpack:"game" json:"game"`
	PrimaryFrequencies   []float64         `msgpack:"primary_frequencies" json:"-"`
	SecondaryFrequencies []float64         `msgpack:"secondary_frequencies" json:"-"`
	PairFrequencies      []PairScore       `msgpack:"pair_frequencies" json:"-"`
	PopulationSize       int               `msgpack:"population_size" json:"population_size"`
	Generations          int               `msgpack:"generations" json:"generations"`
	CrossoverProb        float64           `msgpack:"crossover_prob" json:"crossover_prob"`
	MutationProb         float64           `msgpack:"mutation_prob" json:"mutation_prob"`
	TrainedAt            time.Time         `msgpack:"trained_at" json:"trained_at"`
	DrawCount            int               `msgpack:"draw_count" json:"draw_count"`
}

// NewSnapshot captures stats and the parameters of cfg
func NewSnapshot(cfg EngineConfig, stats *statistics.HistoricalStatistics, trainedAt time.Time) *Snapshot {
	pairs := make([]PairScore, 0, len(stats.PairFrequencies()))
	for p, score := range stats.PairFrequencies() {
		pairs = append(pairs, PairScore{A: p.A, B: p.B, Score: score})
	}
	// Map iteration order is random; keep the encoding stable
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})

	return &Snapshot{
		Version:              SnapshotVersion,
		Game:                 cfg.Game,
		PrimaryFrequencies:   append([]float64(nil), stats.PrimaryFrequencies()...),
		SecondaryFrequencies: append([]float64(nil), stats.SecondaryFrequencies()...),
		PairFrequencies:      pairs,
		PopulationSize:       cfg.PopulationSize,
		Generations:          cfg.Generations,
		CrossoverProb:        cfg.CrossoverProb,
		MutationProb:         cfg.MutationProb,
		TrainedAt:            trainedAt.UTC(),
		DrawCount:            stats.DrawCount(),
	}
}

// Statistics rebuilds the statistics tables without touching the draw history
func (s *Snapshot) Statistics() *statistics.HistoricalStatistics {
	var pairs statistics.PairFrequencyTable
	if len(s.PairFrequencies) > 0 {
		pairs = make(statistics.PairFrequencyTable, len(s.PairFrequencies))
		for _, p := range s.PairFrequencies {
			pairs[statistics.NewPair(p.A, p.B)] = p.Score
		}
	}
	return statistics.FromTables(
		s.Game,
		statistics.FrequencyTable(s.PrimaryFrequencies),
		statistics.FrequencyTable(s.SecondaryFrequencies),
		pairs,
		s.DrawCount,
	)
}

// ApplyTo overlays the trained parameters on base, keeping its elitism, workers and seed
func (s *Snapshot) ApplyTo(base EngineConfig) EngineConfig {
	base.Game = s.Game
	base.PopulationSize = s.PopulationSize
	base.Generations = s.Generations
	base.CrossoverProb = s.CrossoverProb
	base.MutationProb = s.MutationProb
	return base
}

// Validate checks the version, the parameters and the consistency of the tables.
// Every failure wraps domain.ErrSnapshotCorrupt.
func (s *Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", domain.ErrSnapshotCorrupt, s.Version)
	}
	if err := s.Game.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	if s.PopulationSize <= 0 || s.Generations < 0 ||
		!isProbability(s.CrossoverProb) || !isProbability(s.MutationProb) {
		return fmt.Errorf("%w: invalid optimizer parameters", domain.ErrSnapshotCorrupt)
	}
	if s.DrawCount < 0 {
		return fmt.Errorf("%w: negative draw count", domain.ErrSnapshotCorrupt)
	}
	if err := checkFrequencies(s.PrimaryFrequencies, s.Game.PrimaryRange); err != nil {
		return fmt.Errorf("%w: primary frequencies: %v", domain.ErrSnapshotCorrupt, err)
	}
	if err := checkFrequencies(s.SecondaryFrequencies, s.Game.SecondaryRange); err != nil {
		return fmt.Errorf("%w: secondary frequencies: %v", domain.ErrSnapshotCorrupt, err)
	}
	for _, p := range s.PairFrequencies {
		if p.A < 1 || p.A >= p.B || p.B > s.Game.PrimaryRange || !isProbability(p.Score) {
			return fmt.Errorf("%w: invalid pair entry (%d,%d)=%v", domain.ErrSnapshotCorrupt, p.A, p.B, p.Score)
		}
	}
	return nil
}

func checkFrequencies(table []float64, symbolRange int) error {
	if len(table) == 0 {
		return nil
	}
	if len(table) != symbolRange+1 {
		return fmt.Errorf("expected %d entries, got %d", symbolRange+1, len(table))
	}
	for symbol, f := range table {
		if !isProbability(f) {
			return fmt.Errorf("symbol %d has frequency %v", symbol, f)
		}
	}
	return nil
}

func isProbability(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// EncodeSnapshot serializes the snapshot with msgpack
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses and validates an encoded snapshot
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
