package domain

import "errors"

var (
	// ErrInvalidConfig marks a configuration rejected before any work starts.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidDraw marks a draw that violates the game's size, range or uniqueness rules.
	ErrInvalidDraw = errors.New("invalid draw")
	// ErrSnapshotNotFound is returned when no optimizer snapshot has been saved yet.
	ErrSnapshotNotFound = errors.New("optimizer snapshot not found")
	// ErrSnapshotCorrupt is returned when a snapshot exists but cannot be decoded or is inconsistent.
	ErrSnapshotCorrupt = errors.New("optimizer snapshot corrupt")
)
