package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "idkit %s\n", buildInfo.Version)
		fmt.Fprintf(out, "  commit: %s\n", buildInfo.Commit)
		fmt.Fprintf(out, "  built:  %s\n", buildInfo.BuildDate)
	},
}
