package cmd

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xll-gen/lttng-gen/internal/config"
	"github.com/xll-gen/lttng-gen/internal/ui"
)

// tracepointHeader is the LTTng-UST header every generated file includes.
const tracepointHeader = "lttng/tracepoint.h"

// compilers are probed in order.
var compilers = []string{"c++", "g++", "clang++"}

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check for the tools needed to build the generated providers",
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintHeader("Checking environment...")
		checkCompiler(exec.LookPath)
		checkTracepointHeader(includeDirs())
		checkConfig(config.DefaultPath)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// checkCompiler verifies that a C++ compiler is available in the system PATH.
func checkCompiler(lookPath func(string) (string, error)) bool {
	for _, name := range compilers {
		if path, err := lookPath(name); err == nil {
			ui.PrintSuccess("C++ compiler", path)
			return true
		}
	}
	ui.PrintError("C++ compiler", "not found; install g++ or clang++ to build the providers")
	return false
}

// includeDirs returns the directories searched for the LTTng-UST headers:
// the CPATH-style environment variables first, then the system defaults.
func includeDirs() []string {
	var dirs []string
	for _, env := range []string{"CPLUS_INCLUDE_PATH", "CPATH"} {
		dirs = append(dirs, filepath.SplitList(os.Getenv(env))...)
	}
	return append(dirs, "/usr/local/include", "/usr/include")
}

// checkTracepointHeader verifies that lttng/tracepoint.h is installed.
func checkTracepointHeader(dirs []string) bool {
	if path, ok := findHeader(dirs, tracepointHeader); ok {
		ui.PrintSuccess("LTTng-UST", path)
		return true
	}
	ui.PrintError("LTTng-UST", tracepointHeader+" not found; install liblttng-ust-dev (or lttng-ust-devel)")
	return false
}

func findHeader(dirs []string, rel string) (string, bool) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, rel)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// checkConfig validates the configuration file when there is one.
func checkConfig(path string) bool {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		ui.PrintWarning("Config", path+" not found; defaults apply")
		return true
	}
	if err == nil {
		config.ApplyDefaults(cfg)
		err = config.Validate(cfg)
	}
	if err != nil {
		ui.PrintError("Config", err.Error())
		return false
	}
	ui.PrintSuccess("Config", path)
	return true
}
