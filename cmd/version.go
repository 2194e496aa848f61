package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xll-gen/lttng-gen/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lttng-gen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lttng-gen %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
