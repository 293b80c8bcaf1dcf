package models

import (
	"encoding/json"
	"testing"
)

func TestStackUnmarshal_SchedulableDefaultsTrue(t *testing.T) {
	var s Stack
	if err := json.Unmarshal([]byte(`{"id":"s1","title":"x","actions":[]}`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !s.Schedulable {
		t.Error("absent is_schedulable should default to true")
	}

	var parked Stack
	if err := json.Unmarshal([]byte(`{"id":"s2","is_schedulable":false,"actions":[]}`), &parked); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if parked.Schedulable {
		t.Error("explicit is_schedulable=false should stick")
	}
}

func TestActionsUnmarshal_Forgiving(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "plain list", in: `[{"id":"a1","text":"x"}]`, want: 1},
		{name: "string-wrapped list", in: `"[{\"id\":\"a1\",\"text\":\"x\"}]"`, want: 1},
		{name: "garbage number", in: `42`, want: 0},
		{name: "garbage object", in: `{"not":"a list"}`, want: 0},
		{name: "null", in: `null`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var as Actions
			if err := as.UnmarshalJSON([]byte(tt.in)); err != nil {
				t.Fatalf("UnmarshalJSON returned error: %v", err)
			}
			if as == nil {
				t.Fatal("actions should decode to an empty list, not nil")
			}
			if len(as) != tt.want {
				t.Errorf("got %d actions, want %d", len(as), tt.want)
			}
		})
	}
}

func TestParseParentRef(t *testing.T) {
	if !ParseParentRef("").IsLibrary() {
		t.Error("empty string should mean the library")
	}
	if !ParseParentRef("library").IsLibrary() {
		t.Error(`"library" should mean the library`)
	}
	ref := ParseParentRef("r1")
	if ref.IsLibrary() {
		t.Error("a routine id should not resolve to the library")
	}
	if id, ok := ref.RoutineID(); !ok || id != "r1" {
		t.Errorf("RoutineID = %q, %v", id, ok)
	}
	if ref.String() != "r1" {
		t.Errorf("String = %q", ref.String())
	}
	if Library().String() != "library" {
		t.Errorf("library String = %q", Library().String())
	}
}

func TestCompletionLedger_Prune(t *testing.T) {
	l := CompletionLedger{
		{Owner: "s1", Item: "a1"}: "2025-01-06",
		{Owner: "s1", Item: "a2"}: "2025-01-05",
		{Owner: "r1"}:             "2025-01-04",
	}
	l.Prune("2025-01-06")
	if len(l) != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", len(l))
	}
	if l[LedgerKey{Owner: "s1", Item: "a1"}] != "2025-01-06" {
		t.Error("today's entry should survive pruning")
	}
}

func TestCompletionLedger_JSONRoundTrip(t *testing.T) {
	l := CompletionLedger{
		{Owner: "s1", Item: "a1"}: "2025-01-06",
		{Owner: "r1"}:             "2025-01-06",
	}
	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got CompletionLedger
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[LedgerKey{Owner: "r1"}] != "2025-01-06" {
		t.Error("routine entry lost in round trip")
	}
}
