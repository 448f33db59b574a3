package admin

import (
	"fmt"
	"net/url"

	"github.com/esterlin12/tvplus/cmd/cli/channels"
	"github.com/esterlin12/tvplus/cmd/cli/client"
	"github.com/esterlin12/tvplus/cmd/cli/output"
	"github.com/esterlin12/tvplus/internal/models"
	"github.com/spf13/cobra"
)

// InitAdmin registers the super-user commands.
func InitAdmin(rootCmd *cobra.Command) {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Super-user administration",
	}
	adminCmd.AddCommand(listUsersCmd(), listChannelsCmd(), promoteCmd())
	rootCmd.AddCommand(adminCmd)
}

func listUsersCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var users []models.User
			if err := c.Do("GET", "/admin/users", nil, &users); err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), users)
			}
			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.ID, u.Username, u.Email, u.IsSuperUser})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Username", "Email", "Super User"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func listChannelsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List every active channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var list []models.Channel
			if err := c.Do("GET", "/admin/channels", nil, &list); err != nil {
				return err
			}
			return channels.RenderChannels(cmd.OutOrStdout(), list, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func promoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote [user-id]",
		Short: "Grant super-user rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var resp struct {
				Message string `json:"message"`
			}
			if err := c.Do("POST", "/admin/users/"+url.PathEscape(args[0])+"/make-super", nil, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}
}
