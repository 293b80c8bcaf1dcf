package models

type ScheduleType string

const (
	ScheduleDaily    ScheduleType = "daily"
	ScheduleWeekly   ScheduleType = "weekly"
	ScheduleInterval ScheduleType = "interval"
	ScheduleBiweekly ScheduleType = "biweekly"
	ScheduleMonthly  ScheduleType = "monthly"
	ScheduleOneTime  ScheduleType = "oneTime"
	ScheduleNone     ScheduleType = "none"
	// ScheduleUnset marks legacy items that predate schedule types. They
	// behave as weekly when days are configured and as always-due otherwise.
	ScheduleUnset ScheduleType = ""
)

// Schedule is the uniform view of an item's recurrence configuration that the
// evaluator dispatches on. Both stacks and routines expose one.
type Schedule struct {
	Type        ScheduleType
	Days        []string // weekday names, "Monday".."Sunday"
	Interval    int
	StartDate   string // YYYY-MM-DD
	DayOfMonth  int
	Schedulable bool
}

// ScheduleOptions carries a schedule update. Nil Days leaves an existing day
// set untouched when updating a routine's legacy schedule.
type ScheduleOptions struct {
	Type        ScheduleType
	Days        []string
	Interval    int
	Schedulable bool
	StartDate   string
	DayOfMonth  int
}
