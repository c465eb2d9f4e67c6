package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/gesture"
	"github.com/alexanderramin/eventboard/internal/timeline"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Act on every task of a category",
	}

	var days int
	shift := &cobra.Command{
		Use:   "shift EVENT CATEGORY",
		Short: "Move every scheduled task of a category by the same days",
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
			result, err := s.shift(ctx, "category:"+cat.ID, "category "+cat.Name, days)
			reportShift(cmd.OutOrStdout(), result)
			return err
		},
	}
	shift.Flags().IntVar(&days, "days", 0, "Days to move (negative moves earlier)")
	_ = shift.MarkFlagRequired("days")

	cmd.AddCommand(shift)
	return cmd
}

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Act on every task of a section stage",
	}

	var days int
	shift := &cobra.Command{
		Use:   "shift EVENT SECTION STAGE",
		Short: "Move every scheduled task of a stage by the same days",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, app, args[0])
			if err != nil {
				return err
			}
			sec, err := findSection(s.data, args[1])
			if err != nil {
				return err
			}
			stages, err := parseStages([]string{args[2]})
			if err != nil {
				return err
			}
			stage := stages[0]
			label := fmt.Sprintf("stage %s/%s", sec.Name, domain.StageLabel(stage))
			result, err := s.shift(ctx, "stage:"+timeline.StageKey(sec.ID, stage), label, days)
			reportShift(cmd.OutOrStdout(), result)
			return err
		},
	}
	shift.Flags().IntVar(&days, "days", 0, "Days to move (negative moves earlier)")
	_ = shift.MarkFlagRequired("days")

	cmd.AddCommand(shift)
	return cmd
}

// reportShift prints what a bulk drop did. Tasks that failed keep their
// old dates; the rest stay moved.
func reportShift(w io.Writer, result *gesture.BulkResult) {
	if result == nil || result.Rejected {
		return
	}
	if result.OffsetDays == 0 {
		fmt.Fprintln(w, "Nothing to move.")
		return
	}
	fmt.Fprintf(w, "Moved %d task(s) by %+d day(s)\n", len(result.Succeeded), result.OffsetDays)
	if len(result.Failed) > 0 {
		ids := make([]string, len(result.Failed))
		for i, f := range result.Failed {
			ids[i] = f.TaskID
		}
		fmt.Fprintf(w, "%d task(s) kept their dates: %s\n", len(result.Failed), strings.Join(ids, ", "))
	}
}
