package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dnminh/restaff/pkg/core/services"
)

// ValidateConditionsCmd creates the validateConditions command
func ValidateConditionsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateConditions",
		Short: "Check the stored scheduling conditions for contradictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("validateConditions command")

			result, err := services.ValidateConditions(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if len(result.Errors) == 0 {
				fmt.Printf("\n✅ All %d condition(s) are valid.\n", result.ConditionCount)
				return nil
			}

			fmt.Printf("\n❌ %d blocking error(s) in %d condition(s):\n\n", len(result.Errors), result.ConditionCount)
			for _, e := range result.Errors {
				fmt.Printf("  • %s\n", e)
			}
			fmt.Println("\n💡 Scheduling runs are blocked until these are fixed.")

			return nil
		},
	}
}
