package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/schedule"
	"github.com/sgrier/stacker/internal/tracker"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render("Today") + "  " +
		dateStyle.Render(m.now().Format(schedule.DateFormat))

	var body string
	if len(m.rows) == 0 {
		body = emptyStyle.Render("Nothing due today.")
	} else {
		lines := make([]string, 0, len(m.rows))
		for i, rw := range m.rows {
			lines = append(lines, m.renderRow(rw, i == m.cursor))
		}
		body = strings.Join(lines, "\n")
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		"",
		m.help.View(m.keys),
	)
	return docStyle.Render(ui)
}

func (m Model) renderRow(rw row, selected bool) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("> ")
	}

	switch rw.kind {
	case rowRoutine:
		r, ok := m.routineFor(rw)
		if !ok {
			return prefix
		}
		line := routineStyle.Render(r.Title)
		if r.Streak > 0 {
			line += " " + streakStyle.Render(fmt.Sprintf("%d🔥", r.Streak))
		}
		if tracker.IsRoutineCompleted(r, m.now()) {
			line += " " + doneStyle.Render("✓")
		}
		return prefix + line

	case rowStack:
		s, ok := m.stackFor(rw)
		if !ok {
			return prefix
		}
		marker := "▸"
		if s.IsExpanded {
			marker = "▾"
		}
		line := stackStyle.Render(fmt.Sprintf("%s %s", marker, s.Title))
		handled := 0
		for _, a := range s.Actions {
			if a.Handled() {
				handled++
			}
		}
		line += " " + actionStyle.Render(fmt.Sprintf("[%d/%d]", handled, len(s.Actions)))
		if s.Streak > 0 {
			line += " " + streakStyle.Render(fmt.Sprintf("%d🔥", s.Streak))
		}
		if tracker.IsStackCompleted(s) {
			line += " " + doneStyle.Render("✓")
		}
		return prefix + "  " + line

	case rowAction:
		s, ok := m.stackFor(rw)
		if !ok {
			return prefix
		}
		for _, a := range s.Actions {
			if a.ID != rw.actionID {
				continue
			}
			return prefix + "    " + renderAction(a)
		}
	}
	return prefix
}

func renderAction(a models.Action) string {
	switch {
	case a.Completed:
		return doneStyle.Render("✓ " + a.Text)
	case a.Skipped:
		return skippedStyle.Render("- " + a.Text)
	default:
		line := actionStyle.Render("· " + a.Text)
		if a.Streak > 0 {
			line += " " + streakStyle.Render(fmt.Sprintf("%d🔥", a.Streak))
		}
		return line
	}
}

func (m Model) routineFor(rw row) (models.Routine, bool) {
	for _, r := range m.tracker.Routines() {
		if r.ID == rw.routineID {
			return r, true
		}
	}
	return models.Routine{}, false
}
