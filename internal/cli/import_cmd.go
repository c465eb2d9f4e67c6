package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create an event, its catalog and schedule from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportEvent(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Imported %s [%s]: %d section(s), %d category(ies), %d item(s), %d task(s), %d crew\n",
				result.Event.Name, result.Event.DisplayID(),
				result.SectionCount, result.CategoryCount, result.ItemCount, result.TaskCount, result.CrewCount)
			return nil
		},
	}
}
