package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xll-gen/lttng-gen/version"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lttng-gen",
	Short: "A tool to generate LTTng tracepoint providers from event manifests",
	Long: `lttng-gen reads an event manifest (YAML or ETW XML) and generates, per provider,
the LTTng-UST tracepoint header, the FireEtXplat provider implementation and the
probe translation unit.`,
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newGenerateCommand().cmd)
	rootCmd.AddCommand(newPartitionCommand().cmd)
}
