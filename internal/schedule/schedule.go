// Package schedule decides whether an item is due on a given calendar date.
// Every function is pure: identical inputs always give identical answers, and
// dates are compared at day granularity only.
package schedule

import (
	"time"

	"github.com/sgrier/stacker/internal/models"
)

// DateFormat is the wire format for calendar dates throughout the system.
const DateFormat = "2006-01-02"

// Item is anything carrying a recurrence configuration. Both models.Stack and
// models.Routine satisfy it.
type Item interface {
	Schedule() models.Schedule
}

// Weekday names are pinned to Go's English long names ("Monday".."Sunday"),
// matching the names stored in schedule day sets. They do not vary with the
// process locale.
func WeekdayName(date time.Time) string {
	return date.Weekday().String()
}

// IsDue reports whether the item is due on the given date.
func IsDue(item Item, date time.Time) bool {
	return isDue(item.Schedule(), date)
}

func isDue(s models.Schedule, date time.Time) bool {
	// An unschedulable item never appears, regardless of its schedule.
	if !s.Schedulable {
		return false
	}

	// Legacy items with no configuration at all are always due.
	if s.Type == models.ScheduleUnset && len(s.Days) == 0 {
		return true
	}

	switch s.Type {
	case models.ScheduleUnset, models.ScheduleWeekly:
		return containsDay(s.Days, WeekdayName(date))

	case models.ScheduleDaily:
		return true

	case models.ScheduleInterval:
		start, ok := parseDay(s.StartDate)
		if !ok || s.Interval <= 0 {
			return false
		}
		days := daysBetween(start, date)
		return days >= 0 && days%s.Interval == 0

	case models.ScheduleBiweekly:
		start, ok := parseDay(s.StartDate)
		if !ok || s.Interval <= 0 || !containsDay(s.Days, WeekdayName(date)) {
			return false
		}
		days := daysBetween(start, date)
		if days < 0 {
			return false
		}
		return (days/7)%s.Interval == 0

	case models.ScheduleMonthly:
		start, ok := parseDay(s.StartDate)
		if !ok || s.DayOfMonth == 0 || s.Interval <= 0 {
			return false
		}
		if date.Day() != s.DayOfMonth {
			return false
		}
		months := monthsBetween(start, date)
		return months >= 0 && months%s.Interval == 0

	case models.ScheduleOneTime:
		start, ok := parseDay(s.StartDate)
		if !ok {
			return false
		}
		return sameDay(start, date)

	case models.ScheduleNone:
		return false

	default:
		// Unknown types fall back to the weekly day match, the same
		// treatment legacy data gets.
		return containsDay(s.Days, WeekdayName(date))
	}
}

// ShouldTrackStreak reports whether completions of the item may earn streak
// credit. Unschedulable, unscheduled, and one-time items never do.
func ShouldTrackStreak(item Item) bool {
	s := item.Schedule()
	if !s.Schedulable {
		return false
	}
	switch s.Type {
	case models.ScheduleUnset, models.ScheduleNone, models.ScheduleOneTime:
		return false
	}
	return true
}

func containsDay(days []string, name string) bool {
	for _, d := range days {
		if d == name {
			return true
		}
	}
	return false
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// truncateDay strips the time-of-day and zone so that date arithmetic counts
// whole calendar days.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(start, date time.Time) int {
	return int(truncateDay(date).Sub(truncateDay(start)) / (24 * time.Hour))
}

func monthsBetween(start, date time.Time) int {
	return (date.Year()-start.Year())*12 + int(date.Month()) - int(start.Month())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
