package channels

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/esterlin12/tvplus/cmd/cli/client"
	"github.com/esterlin12/tvplus/cmd/cli/output"
	"github.com/esterlin12/tvplus/internal/models"
	"github.com/spf13/cobra"
)

// ==========================
// Init Channels
// ==========================
func InitChannels(rootCmd *cobra.Command) {
	channelsCmd := &cobra.Command{
		Use:   "channels",
		Short: "Browse and manage channels",
	}

	channelsCmd.AddCommand(
		listChannelsCmd(),
		getChannelCmd(),
		createChannelCmd(),
		deleteChannelCmd(),
		myChannelsCmd(),
		categoriesCmd(),
		playlistsCmd(),
	)

	rootCmd.AddCommand(channelsCmd)
}

// RenderChannels prints channels as a table, or JSON when asJSON is set.
func RenderChannels(w io.Writer, channels []models.Channel, asJSON bool) error {
	if asJSON {
		return output.PrintJSON(w, channels)
	}
	rows := make([][]interface{}, 0, len(channels))
	for _, c := range channels {
		rows = append(rows, []interface{}{c.ID, c.Name, output.Optional(c.Category), len(c.URLs), c.CreatedAt.Format("2006-01-02 15:04")})
	}
	output.RenderTable(w, []string{"ID", "Name", "Category", "URLs", "Created"}, rows)
	return nil
}

// ==========================
// LIST
// ==========================
func listChannelsCmd() *cobra.Command {
	var category, search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if category != "" {
				q.Set("category", category)
			}
			if search != "" {
				q.Set("search", search)
			}
			path := "/channels"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var channels []models.Channel
			if err := client.New().Do("GET", path, nil, &channels); err != nil {
				return err
			}
			return RenderChannels(cmd.OutOrStdout(), channels, asJSON)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only channels in this category")
	cmd.Flags().StringVar(&search, "search", "", "substring of name or description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// GET
// ==========================
func getChannelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var channel models.Channel
			if err := client.New().Do("GET", "/channels/"+url.PathEscape(args[0]), nil, &channel); err != nil {
				return err
			}
			return output.PrintJSON(cmd.OutOrStdout(), channel)
		},
	}
}

// ==========================
// CREATE
// ==========================
func createChannelCmd() *cobra.Command {
	var name, description, category, logoFile string
	var urls []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a channel owned by the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}

			payload := map[string]interface{}{
				"name":        name,
				"description": description,
				"urls":        urls,
			}
			if category != "" {
				payload["category"] = category
			}
			if logoFile != "" {
				data, err := os.ReadFile(logoFile)
				if err != nil {
					return fmt.Errorf("read logo: %w", err)
				}
				payload["logo"] = base64.StdEncoding.EncodeToString(data)
			}

			var channel models.Channel
			if err := c.Do("POST", "/channels", payload, &channel); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Channel %q created with id %s\n", channel.Name, channel.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "channel name")
	cmd.Flags().StringVar(&description, "description", "", "channel description")
	cmd.Flags().StringVar(&category, "category", "", "channel category")
	cmd.Flags().StringArrayVar(&urls, "url", nil, "stream URL (repeatable)")
	cmd.Flags().StringVar(&logoFile, "logo-file", "", "image file sent inline as base64")
	cmd.MarkFlagRequired("name")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteChannelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete (deactivate) a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var resp struct {
				Message string `json:"message"`
			}
			if err := c.Do("DELETE", "/channels/"+url.PathEscape(args[0]), nil, &resp); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}
}

// ==========================
// MINE
// ==========================
func myChannelsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List channels created by the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var channels []models.Channel
			if err := c.Do("GET", "/my-channels", nil, &channels); err != nil {
				return err
			}
			return RenderChannels(cmd.OutOrStdout(), channels, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// ==========================
// CATEGORIES
// ==========================
func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Categories []string `json:"categories"`
			}
			if err := client.New().Do("GET", "/categories", nil, &resp); err != nil {
				return err
			}
			if len(resp.Categories) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(resp.Categories, "\n"))
			}
			return nil
		},
	}
}

// ==========================
// M3U8 (super-user)
// ==========================
func playlistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "m3u8 [id]",
		Short: "List a channel's .m3u8 playlist URLs (super-user only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.Authenticated()
			if err != nil {
				return err
			}
			var resp struct {
				URLs []string `json:"m3u8_urls"`
			}
			if err := c.Do("GET", "/channels/"+url.PathEscape(args[0])+"/m3u8", nil, &resp); err != nil {
				return err
			}
			for _, u := range resp.URLs {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		},
	}
}
