package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/tracker"
)

type StackAddCmd struct {
	Title   string   `arg:"" help:"Stack title."`
	Actions []string `short:"a" help:"Action labels, in execution order." required:""`
	Routine string   `short:"r" help:"Target routine id; omit to save to the library."`
	Today   bool     `help:"Launch as a one-time stack for today."`
}

func (c *StackAddCmd) Run(ctx *Context) error {
	stack := buildStack(c.Title, c.Actions)

	err := ctx.mutate(func(t *tracker.Tracker) error {
		switch {
		case c.Today:
			return t.AddStackToToday(stack)
		case c.Routine != "":
			return t.AddStackToRoutine(c.Routine, stack)
		default:
			return t.SaveUnscheduledStack(stack)
		}
	})
	if err != nil {
		return err
	}

	where := "library"
	if c.Today {
		where = "today"
	} else if c.Routine != "" {
		where = c.Routine
	}
	fmt.Printf("Added stack: %s (ID: %s) to %s\n", c.Title, stack.ID, where)
	return nil
}

func buildStack(title string, labels []string) models.Stack {
	actions := make(models.Actions, 0, len(labels))
	for _, text := range labels {
		actions = append(actions, models.Action{
			ID:   uuid.New().String(),
			Text: text,
		})
	}
	return models.Stack{
		ID:          uuid.New().String(),
		Title:       title,
		Actions:     actions,
		Schedulable: true,
	}
}

type StackListCmd struct {
	Routine string `short:"r" help:"Routine id, or 'library'." default:"library"`
}

func (c *StackListCmd) Run(ctx *Context) error {
	t, err := ctx.loadTracker()
	if err != nil {
		return err
	}

	parent := models.ParseParentRef(c.Routine)
	var stacks []models.Stack
	if parent.IsLibrary() {
		stacks = t.Library()
		fmt.Println("Library stacks:")
	} else {
		found := false
		for _, r := range t.Routines() {
			if r.ID == c.Routine {
				stacks = r.Stacks
				found = true
				fmt.Printf("Stacks in %s:\n", r.Title)
				break
			}
		}
		if !found {
			return fmt.Errorf("routine not found: %s", c.Routine)
		}
	}

	if len(stacks) == 0 {
		fmt.Println("  No stacks")
		return nil
	}

	for i, s := range stacks {
		labels := make([]string, 0, len(s.Actions))
		for _, a := range s.Actions {
			labels = append(labels, a.Text)
		}
		fmt.Printf("  %d. %s%s: %s\n", i+1, s.Title, formatStreak(s.Streak), strings.Join(labels, " > "))
		fmt.Printf("     id: %s\n", s.ID)
	}
	return nil
}

type StackRenameCmd struct {
	Parent string `arg:"" help:"Routine id or 'library'."`
	Stack  string `arg:"" help:"Stack id."`
	Title  string `arg:"" help:"New title."`
}

func (c *StackRenameCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(t *tracker.Tracker) error {
		t.RenameStack(models.ParseParentRef(c.Parent), c.Stack, c.Title)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Renamed stack to: %s\n", c.Title)
	return nil
}

type StackDeleteCmd struct {
	Parent string `arg:"" help:"Routine id or 'library'."`
	Stack  string `arg:"" help:"Stack id."`
}

func (c *StackDeleteCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(t *tracker.Tracker) error {
		t.DeleteStack(models.ParseParentRef(c.Parent), c.Stack)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Println("Stack deleted")
	return nil
}

type StackAssignCmd struct {
	From  string `arg:"" help:"Source routine id or 'library'."`
	Stack string `arg:"" help:"Stack id."`
	To    string `arg:"" help:"Target routine id or 'library'."`
}

func (c *StackAssignCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(t *tracker.Tracker) error {
		t.AssignStack(models.ParseParentRef(c.From), c.Stack, models.ParseParentRef(c.To))
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Moved stack to %s (streaks reset)\n", c.To)
	return nil
}

type StackMoveCmd struct {
	Routine string `arg:"" help:"Routine id."`
	From    int    `arg:"" help:"Current position (1-based)."`
	To      int    `arg:"" help:"Target position (1-based)."`
}

func (c *StackMoveCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(t *tracker.Tracker) error {
		t.ReorderStacks(c.Routine, c.From-1, c.To-1)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Moved stack %d -> %d\n", c.From, c.To)
	return nil
}

type StackScheduleCmd struct {
	Parent      string `arg:"" help:"Routine id or 'library'."`
	Stack       string `arg:"" help:"Stack id."`
	Type        string `short:"t" help:"Schedule type (daily|weekly|interval|biweekly|monthly|oneTime|none)." required:""`
	Days        string `short:"w" help:"Comma-separated weekdays (weekly/biweekly)."`
	Interval    int    `short:"i" help:"Interval count (interval/biweekly/monthly)."`
	Start       string `short:"s" help:"Anchor date YYYY-MM-DD (interval/biweekly/monthly/oneTime)."`
	DayOfMonth  int    `short:"m" help:"Day of month 1-31 (monthly)."`
	Unscheduled bool   `help:"Mark the stack unschedulable (never due)."`
}

func (c *StackScheduleCmd) Validate() error {
	if c.DayOfMonth < 0 || c.DayOfMonth > 31 {
		return fmt.Errorf("day of month must be between 1 and 31")
	}
	return nil
}

func (c *StackScheduleCmd) Run(ctx *Context) error {
	schedType, err := parseScheduleType(c.Type)
	if err != nil {
		return err
	}
	days, err := parseDays(c.Days)
	if err != nil {
		return err
	}

	err = ctx.mutate(func(t *tracker.Tracker) error {
		t.SetStackSchedule(models.ParseParentRef(c.Parent), c.Stack, models.ScheduleOptions{
			Type:        schedType,
			Days:        days,
			Interval:    c.Interval,
			Schedulable: !c.Unscheduled,
			StartDate:   c.Start,
			DayOfMonth:  c.DayOfMonth,
		})
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated stack schedule: %s\n", c.Type)
	return nil
}
