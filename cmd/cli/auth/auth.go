package auth

import (
	"fmt"

	"github.com/esterlin12/tvplus/cmd/cli/client"
	"github.com/esterlin12/tvplus/cmd/cli/config"
	"github.com/esterlin12/tvplus/cmd/cli/output"
	"github.com/esterlin12/tvplus/internal/models"
	"github.com/spf13/cobra"
)

// InitAuth registers the auth command group (register, login, me, logout) on the root command.
func InitAuth(rootCmd *cobra.Command) {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Register, log in and manage the saved token",
	}
	authCmd.AddCommand(registerCmd(), loginCmd(), meCmd(), logoutCmd())
	rootCmd.AddCommand(authCmd)
}

// ==========================
// Register
// ==========================
func registerCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var user models.User
			payload := map[string]string{"username": username, "email": email, "password": password}
			if err := client.New().Do("POST", "/auth/register", payload, &user); err != nil {
				return fmt.Errorf("failed to register user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s registered (id %s). You can now log in.\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

// ==========================
// Login
// ==========================

// loginCmd logs in and stores the bearer token locally.
func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				AccessToken string      `json:"access_token"`
				User        models.User `json:"user"`
			}
			payload := map[string]string{"username": username, "password": password}
			if err := client.New().Do("POST", "/auth/login", payload, &resp); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if resp.AccessToken == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}
			if err := config.SaveToken(resp.AccessToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")
	return cmd
}

// ==========================
// Me
// ==========================
func meCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var user models.User
			if err := c.Do("GET", "/auth/me", nil, &user); err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(cmd.OutOrStdout(), user)
			}
			output.RenderTable(cmd.OutOrStdout(),
				[]string{"ID", "Username", "Email", "Super User"},
				[][]interface{}{{user.ID, user.Username, user.Email, user.IsSuperUser}},
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// Logout
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := config.ClearToken()
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "No user logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			return nil
		},
	}
}
