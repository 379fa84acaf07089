package genetic

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aristath/eurogenius/internal/domain"
	"github.com/rs/zerolog"
)

// SnapshotStore persists the trained snapshot to a single file
type SnapshotStore struct {
	path string
	log  zerolog.Logger
}

// NewSnapshotStore creates a store writing to path
func NewSnapshotStore(path string, log zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{
		path: path,
		log:  log.With().Str("component", "snapshot_store").Logger(),
	}
}

// Path returns the snapshot file location
func (s *SnapshotStore) Path() string {
	return s.path
}

// Save writes the snapshot atomically (temp file, then rename)
func (s *SnapshotStore) Save(snap *Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	s.log.Info().
		Str("path", s.path).
		Int("bytes", len(data)).
		Int("draw_count", snap.DrawCount).
		Msg("Snapshot saved")
	return nil
}

// Load reads the snapshot. A missing file yields domain.ErrSnapshotNotFound and
// an unreadable or inconsistent one domain.ErrSnapshotCorrupt.
func (s *SnapshotStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", s.path, err)
	}
	return snap, nil
}
