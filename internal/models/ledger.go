package models

import (
	"encoding/json"
	"sort"
)

// LedgerKey identifies the item a completion date is recorded for. Owner is
// the containing collection (stack id for actions, routine id for stacks and
// for the routine itself, where Item is empty).
type LedgerKey struct {
	Owner string
	Item  string
}

// CompletionLedger records, per item, the last calendar date (YYYY-MM-DD) a
// successful completion was credited. It is what makes streak increments
// idempotent within a day.
type CompletionLedger map[LedgerKey]string

type ledgerEntry struct {
	Owner string `json:"owner"`
	Item  string `json:"item,omitempty"`
	Date  string `json:"date"`
}

func (l CompletionLedger) MarshalJSON() ([]byte, error) {
	entries := make([]ledgerEntry, 0, len(l))
	for k, date := range l {
		entries = append(entries, ledgerEntry{Owner: k.Owner, Item: k.Item, Date: date})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Owner != entries[j].Owner {
			return entries[i].Owner < entries[j].Owner
		}
		return entries[i].Item < entries[j].Item
	})
	return json.Marshal(entries)
}

func (l *CompletionLedger) UnmarshalJSON(data []byte) error {
	var entries []ledgerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Tolerate corrupt ledgers: losing idempotence guards is better
		// than refusing to load the snapshot.
		*l = CompletionLedger{}
		return nil
	}
	out := make(CompletionLedger, len(entries))
	for _, e := range entries {
		if e.Owner == "" || e.Date == "" {
			continue
		}
		out[LedgerKey{Owner: e.Owner, Item: e.Item}] = e.Date
	}
	*l = out
	return nil
}

// Prune drops every entry not recorded on the given date.
func (l CompletionLedger) Prune(keep string) {
	for k, date := range l {
		if date != keep {
			delete(l, k)
		}
	}
}

// DropOwner removes every entry recorded under the given owner id.
func (l CompletionLedger) DropOwner(owner string) {
	for k := range l {
		if k.Owner == owner {
			delete(l, k)
		}
	}
}

// Clone returns a copy that shares no memory with the receiver.
func (l CompletionLedger) Clone() CompletionLedger {
	if l == nil {
		return nil
	}
	out := make(CompletionLedger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
