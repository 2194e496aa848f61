package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/xll-gen/lttng-gen/internal/config"
	"github.com/xll-gen/lttng-gen/internal/templates"
	"github.com/xll-gen/lttng-gen/internal/ui"
)

// sampleManifest is the name of the manifest written by init.
const sampleManifest = "manifest.yaml"

var (
	initProvider string
	initForce    bool
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Scaffold an lttng-gen configuration and a sample manifest",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		if err := runInit(dir, initProvider, initForce); err != nil {
			fmt.Printf("Error initializing project: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	initCmd.Flags().StringVar(&initProvider, "provider", "MyCompany-MyApp", "Provider name of the sample manifest")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

// runInit writes lttng-gen.yaml and a sample manifest into dir.
//
// Parameters:
//   - dir: The directory to scaffold; created if missing.
//   - provider: The provider name used in the sample manifest.
//   - force: Overwrite existing files instead of failing.
//
// Returns:
//   - error: An error if a file exists (without force) or cannot be written.
func runInit(dir, provider string, force bool) error {
	files := []struct {
		tmpl string
		dest string
		data interface{}
	}{
		{
			tmpl: "lttng-gen.yaml.tmpl",
			dest: config.DefaultPath,
			data: struct{ Manifest, Intermediate string }{sampleManifest, "obj"},
		},
		{
			tmpl: "manifest.yaml.tmpl",
			dest: sampleManifest,
			data: struct{ Provider, GUID string }{provider, uuid.NewString()},
		},
	}

	if !force {
		for _, f := range files {
			path := filepath.Join(dir, f.dest)
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	ui.PrintHeader(fmt.Sprintf("Initializing %s", dir))
	for _, f := range files {
		content, err := templates.Render(f.tmpl, f.data)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, f.dest)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
		ui.PrintSuccess("created", path)
	}

	fmt.Fprintln(ui.Out, "Next steps:")
	if dir != "." {
		fmt.Fprintf(ui.Out, "  cd %s\n", dir)
	}
	fmt.Fprintln(ui.Out, "  lttng-gen generate --dry-run  # (List the files that would be generated)")
	fmt.Fprintln(ui.Out, "  lttng-gen generate            # (Write them to obj/lttng)")
	return nil
}
