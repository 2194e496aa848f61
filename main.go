package main

import "github.com/xll-gen/lttng-gen/cmd"

// main is the entry point of the lttng-gen CLI application.
// It executes the root command which handles argument parsing and subcommand dispatch.
func main() {
	cmd.Execute()
}
