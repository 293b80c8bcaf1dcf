package tracker

import (
	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/schedule"
)

// CompleteAction marks an action completed. Completing is always allowed,
// even on a date the stack is not due; streak credit is what gets withheld.
// Completing the same action twice on one calendar date credits its streak
// only once. Completing a previously skipped action transitions it straight
// to completed.
func (t *Tracker) CompleteAction(routineID, stackID, actionID string) {
	r := t.routine(routineID)
	if r == nil {
		return
	}
	s, _ := stackIn(r, stackID)
	if s == nil {
		return
	}
	a := actionIn(s, actionID)
	if a == nil {
		return
	}

	today := t.today()
	key := models.LedgerKey{Owner: s.ID, Item: a.ID}
	track := schedule.ShouldTrackStreak(s) && t.IsDueToday(s)

	if track && t.snap.Ledger[key] != today {
		a.Streak++
	}
	t.snap.Ledger[key] = today

	a.Completed = true
	a.Skipped = false

	t.settleStack(r, s)
}

// SkipAction marks an action skipped. A skip is a broken commitment: it zeroes
// the action's streak and cascades a reset of the owning stack's and routine's
// streaks.
func (t *Tracker) SkipAction(routineID, stackID, actionID string) {
	r := t.routine(routineID)
	if r == nil {
		return
	}
	s, _ := stackIn(r, stackID)
	if s == nil {
		return
	}
	a := actionIn(s, actionID)
	if a == nil {
		return
	}

	a.Skipped = true
	a.Completed = false
	a.Streak = 0

	s.Streak = 0
	r.Streak = 0
}

// ToggleStackExpand flips the expansion flag on a stack inside a routine.
func (t *Tracker) ToggleStackExpand(routineID, stackID string) {
	r := t.routine(routineID)
	if r == nil {
		return
	}
	s, _ := stackIn(r, stackID)
	if s == nil {
		return
	}
	s.IsExpanded = !s.IsExpanded
}

// CollapseAllStacks collapses every stack in a routine.
func (t *Tracker) CollapseAllStacks(routineID string) {
	r := t.routine(routineID)
	if r == nil {
		return
	}
	for i := range r.Stacks {
		r.Stacks[i].IsExpanded = false
	}
}

// settleStack runs after an action transition once every action in the stack
// has been handled: it credits or resets the stack streak, moves focus to the
// next due stack, and checks the routine for completion.
func (t *Tracker) settleStack(r *models.Routine, s *models.Stack) {
	if !IsStackCompleted(*s) {
		return
	}

	today := t.today()
	due := t.IsDueToday(s)

	switch {
	case allActionsCompleted(*s) && due && schedule.ShouldTrackStreak(s):
		key := models.LedgerKey{Owner: r.ID, Item: s.ID}
		if t.snap.Ledger[key] != today {
			s.Streak++
		}
		t.snap.Ledger[key] = today
		t.settleRoutine(r)
	case !allActionsCompleted(*s) && due:
		// Handled but not all completed while scheduled: the day
		// counts as broken for this stack.
		s.Streak = 0
		r.Streak = 0
	}

	t.advanceFocus(r, s)
}

// advanceFocus collapses a finished stack and expands the next one in routine
// order, but only when that next stack is itself due.
func (t *Tracker) advanceFocus(r *models.Routine, s *models.Stack) {
	s.IsExpanded = false
	_, idx := stackIn(r, s.ID)
	if idx < 0 || idx+1 >= len(r.Stacks) {
		return
	}
	next := &r.Stacks[idx+1]
	if t.IsDueToday(next) {
		next.IsExpanded = true
	}
}

// settleRoutine credits the routine streak the first time every stack due
// today is fully completed, then collapses the whole routine. A routine with
// nothing due today never completes.
func (t *Tracker) settleRoutine(r *models.Routine) {
	due := DueStacks(*r, t.now())
	if len(due) == 0 {
		return
	}
	for _, s := range due {
		if !allActionsCompleted(s) {
			return
		}
	}

	today := t.today()
	key := models.LedgerKey{Owner: r.ID}
	if t.snap.Ledger[key] != today {
		r.Streak++
	}
	t.snap.Ledger[key] = today

	for i := range r.Stacks {
		r.Stacks[i].IsExpanded = false
	}
}
