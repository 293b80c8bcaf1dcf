package tracker

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sgrier/stacker/internal/models"
)

var (
	ErrRoutineNotFound = errors.New("routine not found")
	ErrReservedID      = errors.New("routine id is reserved")
)

// TodayRoutineID names the synthesized routine that holds ad-hoc one-time
// stacks launched "for today".
const TodayRoutineID = "today"

// AddRoutine appends a routine to the collection. Contained stacks are
// validated against the creation bounds.
func (t *Tracker) AddRoutine(r models.Routine) error {
	if models.IsReservedRoutineID(r.ID) {
		return ErrReservedID
	}
	for _, s := range r.Stacks {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("stack %q: %w", s.Title, err)
		}
	}
	t.snap.Routines = append(t.snap.Routines, r.Clone())
	t.snap.Normalize()
	return nil
}

// DeleteRoutine removes a routine and everything it contains. Its stacks do
// not move to the library, and their ledger entries go with them.
func (t *Tracker) DeleteRoutine(routineID string) {
	r := t.routine(routineID)
	if r == nil {
		return
	}
	for _, s := range r.Stacks {
		t.snap.Ledger.DropOwner(s.ID)
	}
	t.snap.Ledger.DropOwner(routineID)

	kept := t.snap.Routines[:0]
	for _, cand := range t.snap.Routines {
		if cand.ID != routineID {
			kept = append(kept, cand)
		}
	}
	t.snap.Routines = kept
}

// RenameRoutine updates a routine's title.
func (t *Tracker) RenameRoutine(routineID, title string) {
	if r := t.routine(routineID); r != nil {
		r.Title = title
	}
}

// ReorderRoutines moves the routine at source to target, keeping every other
// routine's relative order. Out-of-range indices are a no-op.
func (t *Tracker) ReorderRoutines(source, target int) {
	t.snap.Routines = moveElement(t.snap.Routines, source, target)
}

// ReorderStacks moves a stack within a routine's order.
func (t *Tracker) ReorderStacks(routineID string, source, target int) {
	r := t.routine(routineID)
	if r == nil {
		return
	}
	r.Stacks = moveElement(r.Stacks, source, target)
}

// moveElement performs a stable remove-then-insert move on a slice.
func moveElement[T any](items []T, source, target int) []T {
	if source < 0 || source >= len(items) || target < 0 || target >= len(items) {
		return items
	}
	moved := items[source]
	items = append(items[:source], items[source+1:]...)
	items = append(items[:target], append([]T{moved}, items[target:]...)...)
	return items
}

// RenameStack updates a stack's title under whichever parent holds it.
func (t *Tracker) RenameStack(parent models.ParentRef, stackID, title string) {
	if s := t.stack(parent, stackID); s != nil {
		s.Title = title
	}
}

// DeleteStack removes a stack from its parent and drops its ledger entries.
func (t *Tracker) DeleteStack(parent models.ParentRef, stackID string) {
	if parent.IsLibrary() {
		kept := t.snap.Library[:0]
		removed := false
		for _, s := range t.snap.Library {
			if s.ID == stackID {
				removed = true
				continue
			}
			kept = append(kept, s)
		}
		t.snap.Library = kept
		if removed {
			t.snap.Ledger.DropOwner(stackID)
		}
		return
	}

	id, _ := parent.RoutineID()
	r := t.routine(id)
	if r == nil {
		return
	}
	if s, idx := stackIn(r, stackID); s != nil {
		r.Stacks = append(r.Stacks[:idx], r.Stacks[idx+1:]...)
		t.snap.Ledger.DropOwner(stackID)
	}
}

// AssignStack moves a stack from one parent to another. The move is
// exactly-once: the stack is only detached after the target is known to
// exist, so it can never be lost or duplicated. Changing context invalidates
// the habit chain, so the stack's streak and all action streaks reset, and
// the stack becomes unschedulable exactly when parked in the library.
func (t *Tracker) AssignStack(source models.ParentRef, stackID string, target models.ParentRef) {
	if !target.IsLibrary() {
		id, _ := target.RoutineID()
		if t.routine(id) == nil {
			return
		}
	}

	s := t.detachStack(source, stackID)
	if s == nil {
		return
	}

	moved := s.Clone()
	moved.Streak = 0
	for i := range moved.Actions {
		moved.Actions[i].Streak = 0
	}
	moved.Schedulable = !target.IsLibrary()

	if target.IsLibrary() {
		t.snap.Library = append(t.snap.Library, moved)
		return
	}
	id, _ := target.RoutineID()
	r := t.routine(id)
	r.Stacks = append(r.Stacks, moved)
}

// detachStack removes and returns the stack from its parent, or nil.
func (t *Tracker) detachStack(parent models.ParentRef, stackID string) *models.Stack {
	if parent.IsLibrary() {
		for i := range t.snap.Library {
			if t.snap.Library[i].ID == stackID {
				s := t.snap.Library[i]
				t.snap.Library = append(t.snap.Library[:i], t.snap.Library[i+1:]...)
				return &s
			}
		}
		return nil
	}

	id, _ := parent.RoutineID()
	r := t.routine(id)
	if r == nil {
		return nil
	}
	if s, idx := stackIn(r, stackID); s != nil {
		detached := *s
		r.Stacks = append(r.Stacks[:idx], r.Stacks[idx+1:]...)
		return &detached
	}
	return nil
}

// SaveUnscheduledStack appends a new stack to the library. Library stacks are
// unschedulable and start with every streak at zero.
func (t *Tracker) SaveUnscheduledStack(s models.Stack) error {
	if err := s.Validate(); err != nil {
		return err
	}
	saved := s.Clone()
	saved.Schedulable = false
	saved.Streak = 0
	for i := range saved.Actions {
		saved.Actions[i].Streak = 0
	}
	t.snap.Library = append(t.snap.Library, saved)
	return nil
}

// AddStackToRoutine appends a stack to a routine's list. If the stack was
// sitting in the library it is removed from there first, preserving single
// ownership.
func (t *Tracker) AddStackToRoutine(routineID string, s models.Stack) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r := t.routine(routineID)
	if r == nil {
		return fmt.Errorf("%w: %s", ErrRoutineNotFound, routineID)
	}

	for i := range t.snap.Library {
		if t.snap.Library[i].ID == s.ID {
			t.snap.Library = append(t.snap.Library[:i], t.snap.Library[i+1:]...)
			break
		}
	}

	added := s.Clone()
	added.IsExpanded = false
	added.Schedulable = true
	r.Stacks = append(r.Stacks, added)
	return nil
}

// SetStackSchedule replaces a stack's schedule configuration.
func (t *Tracker) SetStackSchedule(parent models.ParentRef, stackID string, opts models.ScheduleOptions) {
	s := t.stack(parent, stackID)
	if s == nil {
		return
	}
	s.ScheduleType = opts.Type
	s.ScheduleDays = opts.Days
	s.Interval = opts.Interval
	s.Schedulable = opts.Schedulable
	s.StartDate = opts.StartDate
	s.DayOfMonth = opts.DayOfMonth
}

// SetRoutineSchedule updates a routine's schedule. A nil Days keeps the
// routine's existing day set, matching how partial schedule edits arrive.
func (t *Tracker) SetRoutineSchedule(routineID string, opts models.ScheduleOptions) {
	r := t.routine(routineID)
	if r == nil {
		return
	}
	if opts.Days != nil {
		r.Days = opts.Days
	}
	r.ScheduleType = opts.Type
	r.Interval = opts.Interval
	r.StartDate = opts.StartDate
	r.DayOfMonth = opts.DayOfMonth
}

// AddStackToToday drops a one-time copy of the stack into the ad-hoc "Today"
// routine, creating that routine on first use. The copy is scheduled as
// one-time for the current date, so it shows up today and only today, and
// earns no streak credit.
func (t *Tracker) AddStackToToday(s models.Stack) error {
	if err := s.Validate(); err != nil {
		return err
	}

	oneOff := s.Clone()
	oneOff.ID = uuid.New().String()
	oneOff.Schedulable = true
	oneOff.ScheduleType = models.ScheduleOneTime
	oneOff.ScheduleDays = nil
	oneOff.StartDate = t.today()
	oneOff.IsOneTime = true
	oneOff.Streak = 0
	for i := range oneOff.Actions {
		oneOff.Actions[i].Streak = 0
	}

	if r := t.routine(TodayRoutineID); r != nil {
		r.Stacks = append(r.Stacks, oneOff)
		return nil
	}

	t.snap.Routines = append(t.snap.Routines, models.Routine{
		ID:          TodayRoutineID,
		Title:       "Today",
		Description: "One-time stacks for today",
		Stacks:      []models.Stack{oneOff},
		Days:        []string{},
	})
	return nil
}
