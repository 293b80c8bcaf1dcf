package models

// Snapshot is the full tracked state: every routine, the unscheduled-stack
// library, and the completion ledger. The engine hands out deep copies so a
// caller can hold one as a rollback point across a persistence attempt.
type Snapshot struct {
	Routines []Routine        `json:"routines"`
	Library  []Stack          `json:"library"`
	Ledger   CompletionLedger `json:"ledger"`
}

// Normalize replaces nil collections with empty ones so a freshly decoded
// snapshot is safe to mutate.
func (s *Snapshot) Normalize() {
	if s.Routines == nil {
		s.Routines = []Routine{}
	}
	if s.Library == nil {
		s.Library = []Stack{}
	}
	if s.Ledger == nil {
		s.Ledger = CompletionLedger{}
	}
	for i := range s.Routines {
		if s.Routines[i].Stacks == nil {
			s.Routines[i].Stacks = []Stack{}
		}
		if s.Routines[i].Days == nil {
			s.Routines[i].Days = []string{}
		}
	}
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Routines: make([]Routine, len(s.Routines)),
		Library:  make([]Stack, len(s.Library)),
		Ledger:   s.Ledger.Clone(),
	}
	for i, r := range s.Routines {
		out.Routines[i] = r.Clone()
	}
	for i, st := range s.Library {
		out.Library[i] = st.Clone()
	}
	return out
}
