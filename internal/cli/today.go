package cli

import (
	"fmt"

	"github.com/sgrier/stacker/internal/schedule"
	"github.com/sgrier/stacker/internal/tracker"
)

type TodayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *TodayCmd) Run(ctx *Context) error {
	t, err := ctx.loadTracker()
	if err != nil {
		return err
	}

	date, err := ctx.parseDate(c.Date)
	if err != nil {
		return err
	}

	fmt.Printf("Due on %s (%s):\n\n", date.Format("2006-01-02"), schedule.WeekdayName(date))

	shown := 0
	for _, r := range t.Routines() {
		due := tracker.DueStacks(r, date)
		if len(due) == 0 {
			continue
		}
		shown++

		done := ""
		if tracker.IsRoutineCompleted(r, date) {
			done = "  ✓"
		}
		fmt.Printf("%s%s%s\n", r.Title, formatStreak(r.Streak), done)
		fmt.Printf("  id: %s\n", r.ID)

		for _, s := range due {
			marker := " "
			if tracker.IsStackCompleted(s) {
				marker = "✓"
			}
			fmt.Printf("  [%s] %s%s  (%d/%d)\n",
				marker, s.Title, formatStreak(s.Streak),
				int(tracker.StackProgress(s)*float64(len(s.Actions))+0.5), len(s.Actions))
			fmt.Printf("      id: %s\n", s.ID)

			for _, a := range s.Actions {
				status := " "
				switch {
				case a.Completed:
					status = "x"
				case a.Skipped:
					status = "-"
				}
				fmt.Printf("      [%s] %s%s  (%s)\n", status, a.Text, formatStreak(a.Streak), a.ID)
			}
		}
		fmt.Println()
	}

	if shown == 0 {
		fmt.Println("  Nothing scheduled")
	}
	return nil
}
