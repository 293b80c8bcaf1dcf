package cli

import (
	"fmt"

	"github.com/sgrier/stacker/internal/tracker"
)

type CompleteCmd struct {
	Routine string `arg:"" help:"Routine id."`
	Stack   string `arg:"" help:"Stack id."`
	Action  string `arg:"" help:"Action id."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(t *tracker.Tracker) error {
		t.CompleteAction(c.Routine, c.Stack, c.Action)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Println("Action completed")
	return nil
}

type SkipCmd struct {
	Routine string `arg:"" help:"Routine id."`
	Stack   string `arg:"" help:"Stack id."`
	Action  string `arg:"" help:"Action id."`
}

func (c *SkipCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(t *tracker.Tracker) error {
		t.SkipAction(c.Routine, c.Stack, c.Action)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Println("Action skipped")
	return nil
}

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *Context) error {
	err := ctx.mutate(func(t *tracker.Tracker) error {
		t.ResetDay()
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Println("Day reset: all actions back to pending")
	return nil
}
