package models

import (
	"encoding/json"
	"errors"
)

// MaxStackActions bounds a stack to one sitting's worth of work.
const MaxStackActions = 9

var (
	ErrNoActions      = errors.New("stack has no actions")
	ErrTooManyActions = errors.New("stack exceeds the action limit")
)

// Stack is an ordered list of actions meant to be done together, with its own
// recurrence configuration and consecutive-completion streak.
type Stack struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	IsExpanded   bool         `json:"is_expanded"`
	Actions      Actions      `json:"actions"`
	Streak       int          `json:"streak"`
	ScheduleType ScheduleType `json:"schedule_type,omitempty"`
	ScheduleDays []string     `json:"schedule_days,omitempty"`
	Interval     int          `json:"interval,omitempty"`
	Schedulable  bool         `json:"is_schedulable"`
	StartDate    string       `json:"start_date,omitempty"`
	IsOneTime    bool         `json:"is_one_time,omitempty"`
	DayOfMonth   int          `json:"day_of_month,omitempty"`
}

// UnmarshalJSON defaults is_schedulable to true when the field is absent.
// Older exports only wrote the flag when a stack had been parked in the
// library, so absence means schedulable.
func (s *Stack) UnmarshalJSON(data []byte) error {
	type alias Stack
	aux := struct {
		*alias
		Schedulable *bool `json:"is_schedulable"`
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.Schedulable = aux.Schedulable == nil || *aux.Schedulable
	if s.Actions == nil {
		s.Actions = Actions{}
	}
	if s.Streak < 0 {
		s.Streak = 0
	}
	return nil
}

// Schedule returns the stack's recurrence configuration for the evaluator.
func (s Stack) Schedule() Schedule {
	return Schedule{
		Type:        s.ScheduleType,
		Days:        s.ScheduleDays,
		Interval:    s.Interval,
		StartDate:   s.StartDate,
		DayOfMonth:  s.DayOfMonth,
		Schedulable: s.Schedulable,
	}
}

// Validate enforces the creation-time bounds on the action list. Existing
// stacks with zero actions are tolerated everywhere else and simply never
// complete.
func (s Stack) Validate() error {
	if len(s.Actions) == 0 {
		return ErrNoActions
	}
	if len(s.Actions) > MaxStackActions {
		return ErrTooManyActions
	}
	return nil
}

// Clone returns a deep copy of the stack.
func (s Stack) Clone() Stack {
	out := s
	out.Actions = s.Actions.Clone()
	if s.ScheduleDays != nil {
		out.ScheduleDays = append([]string(nil), s.ScheduleDays...)
	}
	return out
}
