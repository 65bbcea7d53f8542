package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuiltAt   = "unknown"
	GitCommit = "unknown"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version info",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf(`Built At: %s
Go Version: %s
Version: %s
Commit ID: %s
`, BuiltAt, runtime.Version(), Version, GitCommit)
	},
}

func init() {
	RootCmd.AddCommand(VersionCmd)
}
