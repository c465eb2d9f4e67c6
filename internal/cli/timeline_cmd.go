package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/eventboard/internal/cli/formatter"
	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var at dates.LocalDay

	cmd := &cobra.Command{
		Use:   "timeline EVENT",
		Short: "Print the event's timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ev, err := resolveEvent(ctx, app, args[0])
			if err != nil {
				return err
			}
			board, err := app.Schedule.LoadBoard(ctx, ev.ID)
			if err != nil {
				return err
			}
			now := app.now()
			if !at.IsZero() {
				// Midday keeps the day stable in any zone.
				now = at.In(time.Local).Add(12 * time.Hour)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(formatter.TimelineData{
				Event:    board.Event,
				Rows:     board.Rows(),
				Now:      now,
				CrewName: board.CrewName,
			}))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&at), "now", "Render statuses as of this day (YYYY-MM-DD)")

	return cmd
}
