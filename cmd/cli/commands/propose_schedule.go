package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dnminh/restaff/pkg/core/allocator"
	"github.com/dnminh/restaff/pkg/core/services"
)

// ProposeScheduleCmd creates the proposeSchedule command
func ProposeScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposeSchedule <week_start>",
		Short: "Run the allocation engine over a week's shifts",
		Long:  "Assign employees to the week's open positions based on availability, workload limits and scheduling conditions, then combine the proposal with the stored schedule.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart := args[0]
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			strategyFlag, _ := cmd.Flags().GetString("strategy")

			if strategyFlag == "" {
				strategyFlag = app.Cfg.DefaultStrategy
			}
			if strategyFlag == "" {
				strategyFlag = string(allocator.StrategyMerge)
			}
			strategy, err := allocator.ParseStrategy(strategyFlag)
			if err != nil {
				return err
			}

			app.Logger.Debug("proposeSchedule command",
				zap.String("week_start", weekStart),
				zap.String("strategy", string(strategy)),
				zap.Bool("dry_run", dryRun))

			result, err := services.ProposeSchedule(app.Ctx, app.Database, app.Cfg, app.Logger, weekStart, strategy, dryRun)
			if err != nil {
				return fmt.Errorf("proposal failed: %w", err)
			}

			fmt.Printf("\n🗓  Schedule Proposal - week of %s\n\n", result.WeekStart)

			if len(result.ValidationErrors) > 0 {
				fmt.Printf("❌ Conditions are contradictory - no assignments were computed:\n\n")
				for _, verr := range result.ValidationErrors {
					fmt.Printf("  • %s\n", verr)
				}
				fmt.Println("\n💡 Fix the conditions (see validateConditions) and try again.")
				return nil
			}

			fmt.Printf("Strategy:    %s\n", strategy)
			if dryRun {
				fmt.Printf("Mode:        🧪 DRY RUN (not saved)\n")
			} else {
				fmt.Printf("Status:      ✅ saved to database\n")
			}
			fmt.Println()

			fmt.Printf("📋 Proposed week:\n\n")
			for _, slot := range result.Applied {
				names := make([]string, 0, len(slot.Assigned))
				for _, a := range slot.Assigned {
					names = append(names, fmt.Sprintf("%s (%s)", a.UserID, a.Role))
				}
				assignees := "—"
				if len(names) > 0 {
					assignees = strings.Join(names, ", ")
				}
				fmt.Printf("  %s  %s - %s  %-12s %s\n", slot.Date, slot.Start, slot.End, slot.TemplateID, assignees)
			}
			fmt.Println()

			if len(result.Result.Unfilled) > 0 {
				fmt.Printf("⚠️  Unfilled positions (%d shift(s)):\n", len(result.Result.Unfilled))
				for _, u := range result.Result.Unfilled {
					fmt.Printf("  • shift %s: %d open\n", u.ShiftID, u.Remaining)
				}
				fmt.Println()
			}

			if len(result.Result.Warnings) > 0 {
				fmt.Printf("⚠️  Warnings (%d):\n", len(result.Result.Warnings))
				for _, w := range result.Result.Warnings {
					fmt.Printf("  • %s\n", w)
				}
				fmt.Println()
			}

			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to save the schedule.")
			}

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().String("strategy", "", "How to combine the proposal with the stored schedule: merge or replace")

	return cmd
}
