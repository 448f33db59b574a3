package main

import (
	"fmt"
	"os"

	"github.com/esterlin12/tvplus/cmd/cli/admin"
	"github.com/esterlin12/tvplus/cmd/cli/auth"
	"github.com/esterlin12/tvplus/cmd/cli/channels"
	"github.com/esterlin12/tvplus/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	channels.InitChannels(rootCmd)
	admin.InitAdmin(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
