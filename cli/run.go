package cli

import (
	"fmt"

	"github.com/oceanglide/gliderfetch/glider"
	"github.com/oceanglide/gliderfetch/log"
	"github.com/oceanglide/gliderfetch/mcp"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	serverFlag string

	// Root command
	rootCmd = &cobra.Command{
		Use:           "gliderfetch",
		Short:         "Fetch and plot oceanographic glider data from ERDDAP servers",
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.EnableGlobalHTTP()
		},
		Long: `gliderfetch is a CLI tool for discovering, downloading, and plotting
autonomous underwater glider datasets served over the ERDDAP protocol.

Discovery is scoped by geographic and time bounds; downloads are returned
as CSV; plots are rendered to PNG.`,
	}

	// Version command
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gliderfetch version %s\n", glider.Version)
			if glider.VersionCommit != "" {
				fmt.Printf("  commit: %s\n", glider.VersionCommit)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", glider.DefaultServer, "ERDDAP server URL")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcp.Command())
}

// Run executes the main CLI functionality
func Run() error {
	return rootCmd.Execute()
}
