package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/eventboard/internal/cli/formatter"
	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/gesture"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Schedule and edit tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskScheduleCmd(app),
		newTaskMoveCmd(app),
		newTaskResizeCmd(app),
		newTaskCompleteCmd(app, true),
		newTaskCompleteCmd(app, false),
		newTaskDeleteCmd(app),
		newTaskAssignCmd(app),
		newTaskUnassignCmd(app),
		newTaskAddManualCmd(app),
	)

	return cmd
}

// withTask opens the event's board and resolves the task argument.
func withTask(ctx context.Context, app *App, eventRef, taskRef string) (*session, *domain.Task, error) {
	s, err := openSession(ctx, app, eventRef)
	if err != nil {
		return nil, nil, err
	}
	t, err := findTask(s.data, taskRef)
	if err != nil {
		return nil, nil, err
	}
	return s, t, nil
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list EVENT",
		Short: "List the event's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(s.data.Tasks, app.now(), s.data.CrewName))
			return nil
		},
	}
}

func newTaskScheduleCmd(app *App) *cobra.Command {
	var start dates.LocalDay

	cmd := &cobra.Command{
		Use:   "schedule EVENT ITEM",
		Short: "Give an unscheduled item a one-day task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := findEventItem(s.data, args[1])
			if err != nil {
				return err
			}
			if err := s.schedule(ctx, item, start); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s on %s\n", item.Name, formatter.SpanLabel(start, start))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&start), "start", "Day of the task (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "move EVENT TASK",
		Short: "Move a task by whole days, keeping its duration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, t, err := withTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			span, err := s.move(ctx, t, days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", t.Name, formatter.SpanLabel(span.Start, span.End))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to move (negative moves earlier)")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newTaskResizeCmd(app *App) *cobra.Command {
	var (
		days int
		edge string
	)

	cmd := &cobra.Command{
		Use:   "resize EVENT TASK",
		Short: "Lengthen or shorten a task at one edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var e gesture.Edge
			switch strings.ToLower(edge) {
			case "right", "end":
				e = gesture.EdgeRight
			case "left", "start":
				e = gesture.EdgeLeft
			default:
				return fmt.Errorf("invalid edge %q (expected left or right)", edge)
			}
			ctx := context.Background()
			s, t, err := withTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			span, err := s.resize(ctx, t, e, days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", t.Name, formatter.SpanLabel(span.Start, span.End))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to add (negative shortens, minimum one day)")
	cmd.Flags().StringVar(&edge, "edge", "right", "Edge to move: left or right")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newTaskCompleteCmd(app *App, completed bool) *cobra.Command {
	use, short, verb := "done EVENT TASK", "Mark a task completed", "completed"
	if !completed {
		use, short, verb = "undone EVENT TASK", "Mark a task not completed", "reopened"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, t, err := withTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			changed, err := s.setCompleted(ctx, t, completed)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already %s\n", t.Name, verb)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", t.Name, verb)
			return nil
		},
	}
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete EVENT TASK",
		Short: "Empty a task's slot; the item stays on the event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, t, err := withTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			if err := s.remove(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", t.Name)
			return nil
		},
	}
}

func newTaskAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign EVENT TASK CREW",
		Short: "Assign a crew member to a task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, t, err := withTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			m, err := resolveCrew(ctx, app, args[2])
			if err != nil {
				return err
			}
			return gesture.AssignCrew(ctx, app.Crew, func(updated *domain.Task) {
				fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %s %s\n", m.Name, updated.Name, formatter.InviteBadge(updated))
			}, t.ID, m.ID)
		},
	}
}

func newTaskUnassignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign EVENT TASK",
		Short: "Remove the crew member from a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, t, err := withTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			return gesture.AssignCrew(ctx, app.Crew, func(updated *domain.Task) {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed crew from %s\n", updated.Name)
			}, t.ID, "")
		},
	}
}

func newTaskAddManualCmd(app *App) *cobra.Command {
	var (
		name  string
		start dates.LocalDay
		days  int
	)

	cmd := &cobra.Command{
		Use:   "add-manual EVENT CATEGORY",
		Short: "Add a free-standing task to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			cat, err := findCategory(s.data, args[1])
			if err != nil {
				return err
			}
			t, err := app.Schedule.CreateManualTask(ctx, s.event.ID, cat.ID, name, start.Storage(), days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s: %s\n", t.Name, cat.Name, formatter.TaskSpanLabel(t))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().Var(newDateValue(&start), "start", "First day (YYYY-MM-DD)")
	cmd.Flags().IntVar(&days, "days", 1, "Duration in days")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
