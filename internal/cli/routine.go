package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sgrier/stacker/internal/models"
	"github.com/sgrier/stacker/internal/tracker"
)

type RoutineAddCmd struct {
	Title       string `arg:"" help:"Routine title."`
	Description string `short:"d" help:"Optional description."`
	Days        string `short:"w" help:"Comma-separated weekdays (e.g. mon,wed,fri)."`
}

func (c *RoutineAddCmd) Run(ctx *Context) error {
	days, err := parseDays(c.Days)
	if err != nil {
		return err
	}
	if days == nil {
		days = []string{}
	}

	routine := models.Routine{
		ID:          uuid.New().String(),
		Title:       c.Title,
		Description: c.Description,
		Stacks:      []models.Stack{},
		Days:        days,
	}

	err = ctx.mutate(func(t *tracker.Tracker) error {
		return t.AddRoutine(routine)
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added routine: %s (ID: %s)\n", c.Title, routine.ID)
	return nil
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(ctx *Context) error {
	t, err := ctx.loadTracker()
	if err != nil {
		return err
	}

	routines := t.Routines()
	if len(routines) == 0 {
		fmt.Println("No routines found")
		return nil
	}

	fmt.Println("Routines:")
	for i, r := range routines {
		sched := "always"
		if r.ScheduleType != models.ScheduleUnset {
			sched = string(r.ScheduleType)
		} else if len(r.Days) > 0 {
			sched = strings.Join(r.Days, ",")
		}
		fmt.Printf("  %d. %s%s [%s, %d stack(s)]\n", i+1, r.Title, formatStreak(r.Streak), sched, len(r.Stacks))
		fmt.Printf("     id: %s\n", r.ID)
	}
	return nil
}

type RoutineRenameCmd struct {
	Routine string `arg:"" help:"Routine id."`
	Title   string `arg:"" help:"New title."`
}

func (c *RoutineRenameCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(t *tracker.Tracker) error {
		t.RenameRoutine(c.Routine, c.Title)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Renamed routine to: %s\n", c.Title)
	return nil
}

type RoutineDeleteCmd struct {
	Routine string `arg:"" help:"Routine id."`
}

func (c *RoutineDeleteCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(t *tracker.Tracker) error {
		t.DeleteRoutine(c.Routine)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Println("Routine deleted (contained stacks removed with it)")
	return nil
}

type RoutineMoveCmd struct {
	From int `arg:"" help:"Current position (1-based)."`
	To   int `arg:"" help:"Target position (1-based)."`
}

func (c *RoutineMoveCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(t *tracker.Tracker) error {
		t.ReorderRoutines(c.From-1, c.To-1)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Moved routine %d -> %d\n", c.From, c.To)
	return nil
}

type RoutineScheduleCmd struct {
	Routine    string `arg:"" help:"Routine id."`
	Type       string `short:"t" help:"Schedule type (daily|weekly|interval|biweekly|monthly|oneTime|none)." required:""`
	Days       string `short:"w" help:"Comma-separated weekdays (weekly/biweekly)."`
	Interval   int    `short:"i" help:"Interval count (interval/biweekly/monthly)."`
	Start      string `short:"s" help:"Anchor date YYYY-MM-DD (interval/biweekly/monthly/oneTime)."`
	DayOfMonth int    `short:"m" help:"Day of month 1-31 (monthly)."`
}

func (c *RoutineScheduleCmd) Validate() error {
	if c.DayOfMonth < 0 || c.DayOfMonth > 31 {
		return fmt.Errorf("day of month must be between 1 and 31")
	}
	return nil
}

func (c *RoutineScheduleCmd) Run(ctx *Context) error {
	schedType, err := parseScheduleType(c.Type)
	if err != nil {
		return err
	}
	days, err := parseDays(c.Days)
	if err != nil {
		return err
	}

	err = ctx.mutate(func(t *tracker.Tracker) error {
		t.SetRoutineSchedule(c.Routine, models.ScheduleOptions{
			Type:        schedType,
			Days:        days,
			Interval:    c.Interval,
			Schedulable: true,
			StartDate:   c.Start,
			DayOfMonth:  c.DayOfMonth,
		})
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated routine schedule: %s\n", c.Type)
	return nil
}
