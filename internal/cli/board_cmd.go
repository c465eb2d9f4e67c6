package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board EVENT",
		Short: "Open the interactive timeline",
		Long: `Open the interactive timeline.

Move with the arrow keys. space grabs a task bar, h/l nudge it one day and
space drops it. H/L and [/] resize the end and the start. b on a category
or stage header drags all of its tasks together. Changes are shown at once
and rolled back if saving fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("board needs an interactive terminal; use `eventboard timeline %s` instead", args[0])
			}
			ctx := context.Background()
			ev, err := resolveEvent(ctx, app, args[0])
			if err != nil {
				return err
			}
			data, err := app.Schedule.LoadBoard(ctx, ev.ID)
			if err != nil {
				return err
			}
			p := tea.NewProgram(newBoardModel(ctx, app, data), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
