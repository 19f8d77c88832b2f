package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fittrack/go-fitness-client/api"
	"github.com/fittrack/go-fitness-client/users"
)

func newAdminCmd(a **app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations (ADMIN role required)",
	}

	// The role check here is client-side convenience; the backend
	// enforces the real authorization.
	requireAdmin := func() error {
		app := *a
		if err := app.requireAuth(); err != nil {
			return err
		}
		if !app.session.IsAdmin() {
			return errors.New("the admin commands require the ADMIN role")
		}
		return nil
	}

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	var page, size int
	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			app := *a

			var (
				result *api.Page[users.User]
				err    error
			)
			if query != "" {
				result, err = app.users.Search(cmd.Context(), query, page, size)
			} else {
				result, err = app.users.List(cmd.Context(), page, size)
			}
			if err != nil {
				return err
			}

			for _, u := range result.Content {
				cmd.Printf("%s  %-30s %-6s %s\n", u.ID, u.Email, u.Role, u.FullName())
			}
			cmd.Printf("page %d of %d (%d users)\n", result.Number+1, result.TotalPages, result.TotalElements)
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 0, "page number, starting at 0")
	list.Flags().IntVar(&size, "size", 10, "page size")
	list.Flags().StringVar(&query, "query", "", "filter by name or email")
	usersCmd.AddCommand(list)

	usersCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			user, err := (*a).users.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, user)
		},
	})

	usersCmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			return (*a).users.Delete(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(usersCmd)
	return cmd
}
