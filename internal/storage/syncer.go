package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sgrier/stacker/internal/models"
)

// Syncer batches snapshot writes behind a quiet period so rapid-fire
// mutations (completing a whole stack action by action) become one write.
// The in-memory snapshot stays the source of truth; a failed write is logged
// and kept pending so the next flush retries it.
type Syncer struct {
	store Provider
	delay time.Duration
	log   zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *models.Snapshot
}

func NewSyncer(store Provider, delay time.Duration, log zerolog.Logger) *Syncer {
	return &Syncer{
		store: store,
		delay: delay,
		log:   log,
	}
}

// Queue schedules the snapshot for writing after the quiet period. A newer
// snapshot replaces any pending one and restarts the timer.
func (s *Syncer) Queue(snap models.Snapshot) {
	clone := snap.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = &clone
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		if err := s.Flush(); err != nil {
			s.log.Error().Err(err).Msg("background snapshot write failed")
		}
	})
}

// Flush writes any pending snapshot immediately.
func (s *Syncer) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	pending := s.pending
	s.mu.Unlock()

	if pending == nil {
		return nil
	}

	if err := s.store.WriteSnapshot(*pending); err != nil {
		return fmt.Errorf("failed to sync snapshot: %w", err)
	}

	s.mu.Lock()
	if s.pending == pending {
		s.pending = nil
	}
	s.mu.Unlock()

	s.log.Debug().Msg("snapshot synced")
	return nil
}

// Close flushes outstanding work and stops the timer.
func (s *Syncer) Close() error {
	return s.Flush()
}
