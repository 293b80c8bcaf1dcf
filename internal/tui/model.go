package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/storage"
	"github.com/sgrier/stacker/internal/tracker"
)

type rowKind int

const (
	rowRoutine rowKind = iota
	rowStack
	rowAction
)

// row is one selectable line in the flattened today view.
type row struct {
	kind      rowKind
	routineID string
	stackID   string
	actionID  string
}

type Model struct {
	tracker *tracker.Tracker
	syncer  *storage.Syncer
	now     func() time.Time

	keys   KeyMap
	help   help.Model
	rows   []row
	cursor int

	width    int
	height   int
	quitting bool
}

func NewModel(t *tracker.Tracker, syncer *storage.Syncer, now func() time.Time) Model {
	m := Model{
		tracker: t,
		syncer:  syncer,
		now:     now,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	m.rebuildRows()
	return m
}

// rebuildRows flattens today's due routines into selectable lines. Actions
// only show for expanded stacks, mirroring the stack focus behavior.
func (m *Model) rebuildRows() {
	var rows []row
	date := m.now()

	for _, r := range m.tracker.Routines() {
		due := tracker.DueStacks(r, date)
		if len(due) == 0 {
			continue
		}
		rows = append(rows, row{kind: rowRoutine, routineID: r.ID})
		for _, s := range due {
			rows = append(rows, row{kind: rowStack, routineID: r.ID, stackID: s.ID})
			if !s.IsExpanded {
				continue
			}
			for _, a := range s.Actions {
				rows = append(rows, row{kind: rowAction, routineID: r.ID, stackID: s.ID, actionID: a.ID})
			}
		}
	}

	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// stackFor resolves the stack referenced by a row from the current state.
func (m *Model) stackFor(rw row) (models.Stack, bool) {
	return m.tracker.StackByID(models.RoutineParent(rw.routineID), rw.stackID)
}
