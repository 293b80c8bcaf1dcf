// Package tracker holds the in-memory aggregate of routines and library
// stacks and implements every state transition over it: action completion and
// skipping, streak accounting, day rollover, and the structural operations
// (reorder, reassignment, deletion).
//
// The tracker is synchronous, single-writer business logic. Mutations on
// unknown ids are silent no-ops; only creation-time validation returns errors.
// Persistence is the caller's concern: take a Snapshot before a mutation,
// write the new Snapshot after it, and Restore the old one if the write fails.
package tracker

import (
	"time"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/schedule"
)

// Tracker owns one snapshot of tracked state plus the clock used to decide
// what "today" means.
type Tracker struct {
	snap models.Snapshot
	now  func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock injects the time source used for all "today" decisions.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New builds a tracker around the given snapshot. The snapshot is cloned, so
// the caller's copy stays untouched.
func New(snap models.Snapshot, opts ...Option) *Tracker {
	t := &Tracker{
		snap: snap.Clone(),
		now:  time.Now,
	}
	t.snap.Normalize()
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() models.Snapshot {
	return t.snap.Clone()
}

// Restore replaces the current state with the given snapshot, typically one
// taken before a mutation whose persistence failed.
func (t *Tracker) Restore(snap models.Snapshot) {
	t.snap = snap.Clone()
	t.snap.Normalize()
}

// Today returns the current date at day granularity.
func (t *Tracker) Today() time.Time {
	return t.now()
}

func (t *Tracker) today() string {
	return t.now().Format(schedule.DateFormat)
}

func (t *Tracker) routine(id string) *models.Routine {
	for i := range t.snap.Routines {
		if t.snap.Routines[i].ID == id {
			return &t.snap.Routines[i]
		}
	}
	return nil
}

func stackIn(r *models.Routine, stackID string) (*models.Stack, int) {
	for i := range r.Stacks {
		if r.Stacks[i].ID == stackID {
			return &r.Stacks[i], i
		}
	}
	return nil, -1
}

func actionIn(s *models.Stack, actionID string) *models.Action {
	for i := range s.Actions {
		if s.Actions[i].ID == actionID {
			return &s.Actions[i]
		}
	}
	return nil
}

// stack resolves a stack under the given parent, or nil.
func (t *Tracker) stack(parent models.ParentRef, stackID string) *models.Stack {
	if parent.IsLibrary() {
		for i := range t.snap.Library {
			if t.snap.Library[i].ID == stackID {
				return &t.snap.Library[i]
			}
		}
		return nil
	}
	id, _ := parent.RoutineID()
	r := t.routine(id)
	if r == nil {
		return nil
	}
	s, _ := stackIn(r, stackID)
	return s
}
