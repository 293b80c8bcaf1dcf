package models

import "encoding/json"

// Action is a single trackable step within a stack.
type Action struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Skipped   bool   `json:"skipped"`
	Streak    int    `json:"streak"`
}

// Pending reports whether the action has been neither completed nor skipped.
func (a Action) Pending() bool {
	return !a.Completed && !a.Skipped
}

// Handled reports whether the action has reached a terminal per-day state.
func (a Action) Handled() bool {
	return a.Completed || a.Skipped
}

// Actions is an ordered list of actions. Its JSON decoding is deliberately
// forgiving: older exports stored the list as a JSON-encoded string, and
// partially corrupt rows may hold something that is not a list at all. Anything
// unusable decodes to an empty list instead of failing the whole load.
type Actions []Action

func (as *Actions) UnmarshalJSON(data []byte) error {
	var direct []Action
	if err := json.Unmarshal(data, &direct); err == nil {
		*as = normalizeActions(direct)
		return nil
	}

	// A string payload may itself contain an encoded action list.
	var wrapped string
	if err := json.Unmarshal(data, &wrapped); err == nil {
		var inner []Action
		if err := json.Unmarshal([]byte(wrapped), &inner); err == nil {
			*as = normalizeActions(inner)
			return nil
		}
	}

	*as = Actions{}
	return nil
}

func normalizeActions(actions []Action) Actions {
	if actions == nil {
		return Actions{}
	}
	out := make(Actions, 0, len(actions))
	for _, a := range actions {
		if a.Streak < 0 {
			a.Streak = 0
		}
		out = append(out, a)
	}
	return out
}

// Clone returns a copy that shares no memory with the receiver.
func (as Actions) Clone() Actions {
	if as == nil {
		return nil
	}
	out := make(Actions, len(as))
	copy(out, as)
	return out
}
