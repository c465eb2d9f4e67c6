package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/eventboard/internal/cli/formatter"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/spf13/cobra"
)

func newCrewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crew",
		Short: "Manage crew and calendar invitations",
	}

	cmd.AddCommand(
		newCrewAddCmd(app),
		newCrewListCmd(app),
		newCrewPublishCmd(app),
		newCrewRespondCmd(app),
	)

	return cmd
}

func newCrewAddCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a crew member",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &domain.CrewMember{Name: name, Email: email}
			if err := app.Crew.Add(context.Background(), m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added crew member %s %s\n", m.Name, formatter.TruncID(m.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name")
	cmd.Flags().StringVar(&email, "email", "", "Email for calendar invitations")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newCrewListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List crew members",
		RunE: func(cmd *cobra.Command, args []string) error {
			crew, err := app.Crew.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCrewList(crew))
			return nil
		},
	}
}

func newCrewPublishCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "publish EVENT",
		Short: "Export crew-assigned tasks as invitations and mark them invited",
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
			var drafts []*domain.Task
			for _, t := range tasks {
				if t.CrewMemberID != nil && t.SyncStatus == domain.SyncDraft {
					drafts = append(drafts, t)
				}
			}
			if len(drafts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No draft crew assignments to publish.")
				return nil
			}
			if err := writeICS(ctx, app, cmd.OutOrStdout(), out, ev, drafts); err != nil {
				return err
			}
			n, err := app.Crew.Publish(ctx, ev.ID)
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Invited crew on %d task(s)\n", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Invitation file (default stdout)")

	return cmd
}

func newCrewRespondCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "respond EVENT TASK accepted|declined",
		Short: "Record a crew member's answer to an invitation",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, t, err := withTask(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			status := domain.InvitationStatus(strings.ToLower(args[2]))
			updated, err := app.Crew.RecordResponse(ctx, t.ID, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", updated.Name, formatter.InviteBadge(updated))
			return nil
		},
	}
}
