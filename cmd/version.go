package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// VERSION the release version, set at build time
var VERSION = "0.1.0"

var printAllVersion bool
var versionTemplate = `Version:	  %s
Go version:	  %s
OS/Arch:	  %s/%s
`

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Long:  "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		if printAllVersion {
			fmt.Fprintf(cmd.OutOrStdout(), versionTemplate, VERSION, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), VERSION)
	},
}

func init() {
	versionCmd.PersistentFlags().BoolVarP(&printAllVersion, "all", "", false, "Print all version information")
}
