package tracker_test

import (
	"fmt"
	"time"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/tracker"
)

// monday is the fixed test clock: 2025-01-06 is a Monday.
var monday = mustDate("2025-01-06")

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// dailyStack builds a due-every-day stack with n pending actions.
func dailyStack(id string, n int) models.Stack {
	s := models.Stack{
		ID:           id,
		Title:        "stack " + id,
		ScheduleType: models.ScheduleDaily,
		Schedulable:  true,
		Actions:      models.Actions{},
	}
	for i := 1; i <= n; i++ {
		s.Actions = append(s.Actions, models.Action{
			ID:   fmt.Sprintf("%s-a%d", id, i),
			Text: fmt.Sprintf("action %d", i),
		})
	}
	return s
}

// tuesdayStack builds a weekly stack that is not due on the test clock's
// Monday.
func tuesdayStack(id string, n int) models.Stack {
	s := dailyStack(id, n)
	s.ScheduleType = models.ScheduleWeekly
	s.ScheduleDays = []string{"Tuesday"}
	return s
}

func newTracker(routines ...models.Routine) *tracker.Tracker {
	return tracker.New(
		models.Snapshot{Routines: routines},
		tracker.WithClock(clockAt(monday)),
	)
}

func findRoutine(t *tracker.Tracker, id string) models.Routine {
	for _, r := range t.Routines() {
		if r.ID == id {
			return r
		}
	}
	return models.Routine{}
}

func findStack(r models.Routine, id string) models.Stack {
	for _, s := range r.Stacks {
		if s.ID == id {
			return s
		}
	}
	return models.Stack{}
}

func findAction(s models.Stack, id string) models.Action {
	for _, a := range s.Actions {
		if a.ID == id {
			return a
		}
	}
	return models.Action{}
}

// completeAll completes every action in the routine's stack in order.
func completeAll(t *tracker.Tracker, routineID string, s models.Stack) {
	for _, a := range s.Actions {
		t.CompleteAction(routineID, s.ID, a.ID)
	}
}
