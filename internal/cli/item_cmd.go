package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Assign catalog items to an event",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "assign EVENT CATALOG_ITEM",
			Short: "Add a catalog item to the event's timeline",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				s, err := openSession(ctx, app, args[0])
				if err != nil {
					return err
				}
				ci, err := findCatalogItem(s.data, args[1])
				if err != nil {
					return err
				}
				item, err := app.Events.AssignItem(ctx, s.event.ID, ci.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s to %s\n", item.Name, s.event.DisplayID())
				return nil
			},
		},
		&cobra.Command{
			Use:   "unassign EVENT ITEM",
			Short: "Remove an item and its task from the event",
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
				if err := app.Events.UnassignItem(ctx, item.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", item.Name, s.event.DisplayID())
				return nil
			},
		},
	)

	return cmd
}
