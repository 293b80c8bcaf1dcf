package models

// Routine is a named, ordered collection of stacks with its own schedule and
// streak. The legacy Days field is a simple weekly schedule kept for data
// written before the richer schedule fields existed.
type Routine struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Stacks       []Stack      `json:"stacks"`
	Days         []string     `json:"days"`
	Streak       int          `json:"streak"`
	ScheduleType ScheduleType `json:"schedule_type,omitempty"`
	Interval     int          `json:"interval,omitempty"`
	StartDate    string       `json:"start_date,omitempty"`
	DayOfMonth   int          `json:"day_of_month,omitempty"`
}

// Schedule returns the routine's recurrence configuration. Routines are always
// schedulable; only stacks can be parked as unschedulable.
func (r Routine) Schedule() Schedule {
	return Schedule{
		Type:        r.ScheduleType,
		Days:        r.Days,
		Interval:    r.Interval,
		StartDate:   r.StartDate,
		DayOfMonth:  r.DayOfMonth,
		Schedulable: true,
	}
}

// Clone returns a deep copy of the routine.
func (r Routine) Clone() Routine {
	out := r
	if r.Days != nil {
		out.Days = append([]string(nil), r.Days...)
	}
	if r.Stacks != nil {
		out.Stacks = make([]Stack, len(r.Stacks))
		for i, s := range r.Stacks {
			out.Stacks[i] = s.Clone()
		}
	}
	return out
}
