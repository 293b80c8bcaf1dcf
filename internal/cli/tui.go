package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sgrier/stacker/internal/storage"
	"github.com/sgrier/stacker/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	t, err := ctx.loadTracker()
	if err != nil {
		return err
	}

	syncer := storage.NewSyncer(ctx.Store, 500*time.Millisecond, ctx.Log)
	defer func() {
		if err := syncer.Close(); err != nil {
			ctx.Log.Error().Err(err).Msg("failed to flush pending writes on exit")
		}
	}()

	p := tea.NewProgram(tui.NewModel(t, syncer, ctx.Now), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
