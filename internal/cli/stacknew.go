package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/tracker"
)

// StackNewCmd builds a stack interactively.
type StackNewCmd struct{}

func (c *StackNewCmd) Run(ctx *Context) error {
	t, err := ctx.loadTracker()
	if err != nil {
		return err
	}

	destOptions := []huh.Option[string]{
		huh.NewOption("Library (unscheduled)", "library"),
	}
	for _, r := range t.Routines() {
		destOptions = append(destOptions, huh.NewOption(r.Title, r.ID))
	}

	var (
		title   string
		actions string
		dest    string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stack title").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Actions (one per line, 1-9)").
				Value(&actions).
				Validate(func(s string) error {
					n := len(splitLines(s))
					if n == 0 {
						return fmt.Errorf("at least one action is required")
					}
					if n > models.MaxStackActions {
						return fmt.Errorf("at most %d actions", models.MaxStackActions)
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Where should it live?").
				Options(destOptions...).
				Value(&dest),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	stack := buildStack(strings.TrimSpace(title), splitLines(actions))

	err = ctx.mutate(func(t *tracker.Tracker) error {
		if dest == "" || dest == "library" {
			return t.SaveUnscheduledStack(stack)
		}
		return t.AddStackToRoutine(dest, stack)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added stack: %s (ID: %s)\n", stack.Title, stack.ID)
	return nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
