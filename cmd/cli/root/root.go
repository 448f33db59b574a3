package root

import (
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "tvplus",
	Short:         "Live streaming channel directory CLI",
	Long:          "Command line interface for the live streaming channel directory API.\nSet TVPLUS_API_URL to point at a server other than http://localhost:8080/api.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}
