package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dnminh/restaff/pkg/core/services"
)

// ListRosterCmd creates the listRoster command
func ListRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRoster",
		Short: "List all employees on the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listRoster command")

			employees, err := services.ListRoster(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d employee(s):\n\n", len(employees))
			for _, e := range employees {
				roles := string(e.Role)
				if len(e.SecondaryRoles) > 0 {
					secondary := make([]string, len(e.SecondaryRoles))
					for i, r := range e.SecondaryRoles {
						secondary[i] = string(r)
					}
					roles = fmt.Sprintf("%s (+%s)", roles, strings.Join(secondary, ", "))
				}
				fmt.Printf("- %s (%s) - %s\n", e.DisplayName, e.ID, roles)
			}

			return nil
		},
	}
}
