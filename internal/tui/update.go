package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Complete):
			m.completeSelected()
			return m, nil

		case key.Matches(msg, m.keys.Skip):
			m.skipSelected()
			return m, nil

		case key.Matches(msg, m.keys.Expand):
			m.toggleSelected()
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.tracker.ResetDay()
			m.afterMutation()
			return m, nil
		}
	}

	return m, nil
}

func (m *Model) completeSelected() {
	rw, ok := m.currentRow()
	if !ok || rw.kind != rowAction {
		return
	}
	m.tracker.CompleteAction(rw.routineID, rw.stackID, rw.actionID)
	m.afterMutation()
}

func (m *Model) skipSelected() {
	rw, ok := m.currentRow()
	if !ok || rw.kind != rowAction {
		return
	}
	m.tracker.SkipAction(rw.routineID, rw.stackID, rw.actionID)
	m.afterMutation()
}

func (m *Model) toggleSelected() {
	rw, ok := m.currentRow()
	if !ok || rw.kind != rowStack {
		return
	}
	m.tracker.ToggleStackExpand(rw.routineID, rw.stackID)
	m.afterMutation()
}

// afterMutation queues a background write and refreshes the visible rows.
func (m *Model) afterMutation() {
	if m.syncer != nil {
		m.syncer.Queue(m.tracker.Snapshot())
	}
	m.rebuildRows()
}
