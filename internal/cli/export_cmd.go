package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/ics"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export event data",
	}

	var out string
	icsCmd := &cobra.Command{
		Use:   "ics EVENT",
		Short: "Write the event's tasks as an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ev, err := resolveEvent(ctx, app, args[0])
			if err != nil {
				return err
			}
			tasks, err := app.Schedule.ListTasks(ctx, ev.ID)
			if err != nil {
				return err
			}
			return writeICS(ctx, app, cmd.OutOrStdout(), out, ev, tasks)
		},
	}
	icsCmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	cmd.AddCommand(icsCmd)
	return cmd
}

// writeICS renders tasks to path, or to w when path is empty.
func writeICS(ctx context.Context, app *App, w io.Writer, path string, ev *domain.Event, tasks []*domain.Task) error {
	crew, err := app.Crew.List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]*domain.CrewMember, len(crew))
	for _, m := range crew {
		byID[m.ID] = m
	}
	cal := ics.Export(ev, tasks, ics.Options{
		Organizer: app.settings().OrganizerEmail,
		Crew:      byID,
		Now:       app.now(),
	})
	if path == "" {
		_, err := io.WriteString(w, cal)
		return err
	}
	if err := os.WriteFile(path, []byte(cal), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(w, "Wrote %d task(s) to %s\n", len(tasks), path)
	return nil
}
