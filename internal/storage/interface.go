package storage

import "github.com/sgrier/stacker/internal/models"

// Provider persists whole snapshots of tracked state. The engine's in-memory
// snapshot is the source of truth; a provider only loads it at startup and
// writes it back after mutations.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Snapshot
	ReadSnapshot() (models.Snapshot, error)
	WriteSnapshot(models.Snapshot) error

	// Utils
	Path() string
}
