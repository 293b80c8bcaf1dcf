package tracker

import (
	"time"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/schedule"
)

// Routines returns a deep copy of the routine list in display order.
func (t *Tracker) Routines() []models.Routine {
	out := make([]models.Routine, len(t.snap.Routines))
	for i, r := range t.snap.Routines {
		out[i] = r.Clone()
	}
	return out
}

// Library returns a deep copy of the unscheduled-stack library.
func (t *Tracker) Library() []models.Stack {
	out := make([]models.Stack, len(t.snap.Library))
	for i, s := range t.snap.Library {
		out[i] = s.Clone()
	}
	return out
}

// StackByID returns a copy of the stack under the given parent.
func (t *Tracker) StackByID(parent models.ParentRef, stackID string) (models.Stack, bool) {
	s := t.stack(parent, stackID)
	if s == nil {
		return models.Stack{}, false
	}
	return s.Clone(), true
}

// IsDueToday reports whether the item is due on the tracker's current date.
func (t *Tracker) IsDueToday(item schedule.Item) bool {
	return schedule.IsDue(item, t.now())
}

// IsStackCompleted reports whether every action in the stack has been handled
// (completed or skipped). An empty stack never completes. Note this is the
// UI/progress notion of done; streak credit additionally requires every action
// to be completed rather than skipped.
func IsStackCompleted(s models.Stack) bool {
	if len(s.Actions) == 0 {
		return false
	}
	for _, a := range s.Actions {
		if !a.Handled() {
			return false
		}
	}
	return true
}

func allActionsCompleted(s models.Stack) bool {
	if len(s.Actions) == 0 {
		return false
	}
	for _, a := range s.Actions {
		if !a.Completed {
			return false
		}
	}
	return true
}

func anyActionSkipped(s models.Stack) bool {
	for _, a := range s.Actions {
		if a.Skipped {
			return true
		}
	}
	return false
}

// StackProgress returns the handled fraction of the stack's actions, 0..1.
func StackProgress(s models.Stack) float64 {
	if len(s.Actions) == 0 {
		return 0
	}
	handled := 0
	for _, a := range s.Actions {
		if a.Handled() {
			handled++
		}
	}
	return float64(handled) / float64(len(s.Actions))
}

// DueStacks returns the stacks of the routine that are due on the given date,
// in routine order.
func DueStacks(r models.Routine, date time.Time) []models.Stack {
	var due []models.Stack
	for _, s := range r.Stacks {
		if schedule.IsDue(s, date) {
			due = append(due, s)
		}
	}
	return due
}

// IsRoutineCompleted reports whether the routine has at least one stack due on
// the given date and every such stack is completed. A routine with nothing due
// is never "completed".
func IsRoutineCompleted(r models.Routine, date time.Time) bool {
	due := DueStacks(r, date)
	if len(due) == 0 {
		return false
	}
	for _, s := range due {
		if !IsStackCompleted(s) {
			return false
		}
	}
	return true
}
