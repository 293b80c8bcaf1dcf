package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/sgrier/stacker/internal/cli"
	"github.com/sgrier/stacker/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/stacker/stacker.db"`
	Log     string `help:"Write debug logs to this file." type:"path"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize stacker storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today    cli.TodayCmd    `cmd:"" help:"Show what is due for a day."`
	Complete cli.CompleteCmd `cmd:"" help:"Mark an action completed."`
	Skip     cli.SkipCmd     `cmd:"" help:"Skip an action."`
	Reset    cli.ResetCmd    `cmd:"" help:"Run the end-of-day reset."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Check storage health."`
	Routine  struct {
		Add      cli.RoutineAddCmd      `cmd:"" help:"Add a new routine."`
		List     cli.RoutineListCmd     `cmd:"" help:"List all routines."`
		Rename   cli.RoutineRenameCmd   `cmd:"" help:"Rename a routine."`
		Delete   cli.RoutineDeleteCmd   `cmd:"" help:"Delete a routine."`
		Move     cli.RoutineMoveCmd     `cmd:"" help:"Reorder a routine."`
		Schedule cli.RoutineScheduleCmd `cmd:"" help:"Set a routine's schedule."`
	} `cmd:"" help:"Manage routines."`
	Stack struct {
		Add      cli.StackAddCmd      `cmd:"" help:"Add a new stack."`
		New      cli.StackNewCmd      `cmd:"" help:"Create a stack interactively."`
		List     cli.StackListCmd     `cmd:"" help:"List stacks."`
		Rename   cli.StackRenameCmd   `cmd:"" help:"Rename a stack."`
		Delete   cli.StackDeleteCmd   `cmd:"" help:"Delete a stack."`
		Assign   cli.StackAssignCmd   `cmd:"" help:"Move a stack to a routine or the library."`
		Move     cli.StackMoveCmd     `cmd:"" help:"Reorder a stack within its routine."`
		Schedule cli.StackScheduleCmd `cmd:"" help:"Set a stack's schedule."`
	} `cmd:"" help:"Manage stacks."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("stacker"),
		kong.Description("Routine and habit-stack tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	log := zerolog.Nop()
	if CLI.Log != "" {
		f, err := os.OpenFile(CLI.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log = zerolog.New(f).With().Timestamp().Logger()
	}

	// Determine storage type based on extension
	var store storage.Provider
	if len(CLI.Config) > 5 && CLI.Config[len(CLI.Config)-5:] == ".json" {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
		Now:   time.Now,
		Log:   log,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
