package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/eventboard/internal/cli/formatter"
	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/service"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage events",
	}

	cmd.AddCommand(
		newEventCreateCmd(app),
		newEventListCmd(app),
		newEventShowCmd(app),
		newEventRangeCmd(app),
		newEventActivateCmd(app),
	)

	return cmd
}

func newEventCreateCmd(app *App) *cobra.Command {
	var (
		shortID, name string
		from, to      dates.LocalDay
		stages        []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event with its timeline window",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rangeFromFlags(from, to)
			if err != nil {
				return err
			}
			active, err := parseStages(stages)
			if err != nil {
				return err
			}
			ev := &domain.Event{
				ShortID:      strings.ToUpper(shortID),
				Name:         name,
				Range:        r,
				ActiveStages: active,
			}
			if err := app.Events.Create(context.Background(), ev); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created event %s [%s] %s\n", ev.Name, ev.DisplayID(), ev.Range)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. WED24)")
	cmd.Flags().StringVar(&name, "name", "", "Event name")
	cmd.Flags().Var(newDateValue(&from), "from", "First day of the timeline (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&to), "to", "Last day of the timeline (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&stages, "stage", nil, "Active stage (repeatable); default all")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Events.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEventList(events))
			return nil
		},
	}
}

func newEventShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show EVENT",
		Short: "Show event details and task status counts",
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
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatEventDetail(ev, board.Tasks, now))
			fmt.Fprint(out, formatter.FormatTaskList(board.Tasks, now, board.CrewName))
			return nil
		},
	}
}

func newEventRangeCmd(app *App) *cobra.Command {
	var (
		from, to dates.LocalDay
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "range EVENT",
		Short: "Change the timeline window of an event",
		Long: `Change the timeline window of an event.

When tasks would fall outside the new window nothing is applied until the
change is confirmed, either interactively or with --yes. Tasks keep their
dates either way.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			ev, err := resolveEvent(ctx, app, args[0])
			if err != nil {
				return err
			}
			proposed, err := rangeFromFlags(from, to)
			if err != nil {
				return err
			}

			check, err := app.Events.ProposeRange(ctx, ev.ID, proposed)
			if err != nil {
				return err
			}
			if check.Accepted {
				fmt.Fprintf(out, "Range of %s set to %s\n", ev.DisplayID(), proposed)
				return nil
			}

			tasks, err := app.Schedule.ListTasks(ctx, ev.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatRangeConflict(check, tasks))

			switch {
			case yes:
			case app.interactive():
				ok, err := app.confirm("Apply the new range anyway?",
					fmt.Sprintf("%d task(s) will sit outside %s until moved.", check.ConflictCount(), proposed))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Range unchanged.")
					return nil
				}
			default:
				return fmt.Errorf("%w (rerun with --yes to apply)", service.RangeConflictError(check))
			}

			if err := app.Events.ConfirmRange(ctx, ev.ID, proposed); err != nil {
				return err
			}
			fmt.Fprintf(out, "Range of %s set to %s\n", ev.DisplayID(), proposed)
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&from), "from", "First day of the new window (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&to), "to", "Last day of the new window (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply even if tasks fall outside the new window")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newEventActivateCmd(app *App) *cobra.Command {
	var sections, stages []string

	cmd := &cobra.Command{
		Use:   "activate EVENT",
		Short: "Choose which sections and stages the timeline shows",
		Long: `Choose which sections and stages the timeline shows.

Without flags every section and stage is shown again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			active, err := parseStages(stages)
			if err != nil {
				return err
			}
			sectionIDs := make([]string, 0, len(sections))
			for _, ref := range sections {
				sec, err := findSection(s.data, ref)
				if err != nil {
					return err
				}
				sectionIDs = append(sectionIDs, sec.ID)
			}
			if err := app.Events.SetActive(ctx, s.event.ID, sectionIDs, active); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated active sections (%d) and stages (%d) of %s\n",
				len(sectionIDs), len(active), s.event.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sections, "section", nil, "Active section name or ID (repeatable)")
	cmd.Flags().StringSliceVar(&stages, "stage", nil, "Active stage (repeatable)")

	return cmd
}
