// Package cli implements the idkit command-line interface.
package cli

import "github.com/spf13/cobra"

// BuildInfo carries build-time version information from the main package.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

var buildInfo = BuildInfo{Version: "dev", Commit: "unknown", BuildDate: "unknown"}

var rootCmd = &cobra.Command{
	Use:          "idkit",
	Short:        "Short unique identifier service",
	Long:         "idkit issues short, human-friendly, collision-free identifiers.\nRun a server with 'idkit serve' or generate IDs locally with 'idkit generate'.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI with the given build info.
func Execute(info BuildInfo) error {
	buildInfo = info
	return rootCmd.Execute()
}
