package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mineboard/internal/api"
	"mineboard/internal/model"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse and update platform users",
	}
	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersUpdateCmd(app))
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	var query, role string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			users, err := client.ListUsers(cmd.Context(), api.UserFilter{
				Query: query,
				Role:  model.UserRole(role),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{
					u.ID, u.Email, string(u.Role),
					fmt.Sprintf("%.2f", u.TokenBalance), string(u.KYCStatus),
					fmt.Sprintf("%t", u.Suspended),
				})
			}
			return writeTableOr(cmd, app, map[string]any{"data": users},
				[]string{"ID", "EMAIL", "ROLE", "BALANCE", "KYC", "SUSPENDED"}, rows)
		},
	}
	cmd.Flags().StringVar(&query, "q", "", "Search email or display name")
	cmd.Flags().StringVar(&role, "role", "", "Filter by role (member|moderator|admin)")
	return cmd
}

func newUsersUpdateCmd(app *App) *cobra.Command {
	var role string
	var suspended bool
	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a user's role or suspension (only changed flags are sent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in api.UserUpdateInput
			if cmd.Flags().Changed("role") {
				switch role {
				case "member", "moderator", "admin":
				default:
					return writeErr(cmd, fmt.Errorf("invalid --role %q (member|moderator|admin)", role))
				}
				r := model.UserRole(role)
				in.Role = &r
			}
			if cmd.Flags().Changed("suspended") {
				in.Suspended = &suspended
			}
			if in.Role == nil && in.Suspended == nil {
				return writeErr(cmd, fmt.Errorf("nothing to update: pass --role and/or --suspended"))
			}
			_, _, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			u, err := client.UpdateUser(cmd.Context(), strings.TrimSpace(args[0]), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": u})
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "New role (member|moderator|admin)")
	cmd.Flags().BoolVar(&suspended, "suspended", false, "Suspend (true) or reinstate (false)")
	return cmd
}
