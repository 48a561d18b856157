package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dnminh/restaff/pkg/core/services"
)

// ExpandWeekCmd creates the expandWeek command
func ExpandWeekCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "expandWeek <week_start>",
		Short: "Materialize shift templates into concrete shifts for a week",
		Long:  "Expand the configured shift templates into shift rows for the week starting on the given Monday (YYYY-MM-DD). Already-expanded dates are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart := args[0]

			app.Logger.Debug("expandWeek command", zap.String("week_start", weekStart))

			result, err := services.ExpandWeek(app.Ctx, app.Database, app.Cfg, app.Logger, weekStart)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Week %s expanded\n\n", result.WeekStart)
			if len(result.Created) == 0 {
				fmt.Println("No new shifts created - the week is already expanded.")
				return nil
			}

			fmt.Printf("Created %d shift(s)", len(result.Created))
			if result.Skipped > 0 {
				fmt.Printf(", skipped %d already present", result.Skipped)
			}
			fmt.Printf(":\n\n")

			for _, s := range result.Created {
				fmt.Printf("  %s  %s - %s  %s\n", s.ShiftDate, s.StartTime, s.EndTime, s.TemplateID)
			}
			fmt.Println()

			return nil
		},
	}
}
