package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dnminh/restaff/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule <week_start>",
		Short: "Publish a week's schedule to the schedule spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart := args[0]

			app.Logger.Debug("publishSchedule command", zap.String("week_start", weekStart))

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.PublishSchedule(app.Ctx, app.Database, client, app.Cfg, app.Logger, weekStart)
			if err != nil {
				return err
			}

			fmt.Printf("\n✅ Week %s published: %d shift row(s) written to the spreadsheet.\n",
				result.WeekStart, result.RowCount)

			return nil
		},
	}
}
