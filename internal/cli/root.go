package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/storage"
	"github.com/sgrier/stacker/internal/tracker"
)

type Context struct {
	Store storage.Provider
	Now   func() time.Time
	Log   zerolog.Logger
}

// loadTracker loads the store and builds a tracker around its snapshot.
func (ctx *Context) loadTracker() (*tracker.Tracker, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, err
	}
	snap, err := ctx.Store.ReadSnapshot()
	if err != nil {
		return nil, err
	}
	return tracker.New(snap, tracker.WithClock(ctx.Now)), nil
}

// mutate runs fn against the tracker and persists the result. On a write
// failure the tracker is rolled back to its pre-mutation snapshot, so the
// in-memory state a later command would see never diverges from disk.
func (ctx *Context) mutate(fn func(t *tracker.Tracker) error) error {
	t, err := ctx.loadTracker()
	if err != nil {
		return err
	}

	before := t.Snapshot()
	if err := fn(t); err != nil {
		return err
	}

	if err := ctx.Store.WriteSnapshot(t.Snapshot()); err != nil {
		t.Restore(before)
		ctx.Log.Error().Err(err).Msg("rolled back mutation after failed write")
		return fmt.Errorf("failed to persist changes: %w", err)
	}
	return nil
}

var dayNames = map[string]string{
	"sun": "Sunday", "sunday": "Sunday",
	"mon": "Monday", "monday": "Monday",
	"tue": "Tuesday", "tuesday": "Tuesday",
	"wed": "Wednesday", "wednesday": "Wednesday",
	"thu": "Thursday", "thursday": "Thursday",
	"fri": "Friday", "friday": "Friday",
	"sat": "Saturday", "saturday": "Saturday",
}

// parseDays turns a comma-separated weekday list into the canonical long
// names the schedule evaluator matches against.
func parseDays(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var days []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		name, ok := dayNames[part]
		if !ok {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, name)
	}
	return days, nil
}

func parseScheduleType(s string) (models.ScheduleType, error) {
	switch models.ScheduleType(s) {
	case models.ScheduleDaily, models.ScheduleWeekly, models.ScheduleInterval,
		models.ScheduleBiweekly, models.ScheduleMonthly, models.ScheduleOneTime,
		models.ScheduleNone:
		return models.ScheduleType(s), nil
	default:
		return "", fmt.Errorf("invalid schedule type: %s", s)
	}
}

// parseDate accepts YYYY-MM-DD or the literal "today".
func (ctx *Context) parseDate(s string) (time.Time, error) {
	if s == "" || s == "today" {
		return ctx.Now(), nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return d, nil
}

func formatStreak(streak int) string {
	if streak == 0 {
		return ""
	}
	return fmt.Sprintf("  (streak %d)", streak)
}
