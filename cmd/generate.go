package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xll-gen/lttng-gen/internal/config"
	"github.com/xll-gen/lttng-gen/internal/generator"
	"github.com/xll-gen/lttng-gen/internal/manifest"
	"github.com/xll-gen/lttng-gen/internal/ui"
	"github.com/xll-gen/lttng-gen/pkg/log"
)

// generateCommand holds the generate command and the values of its flags.
type generateCommand struct {
	cmd *cobra.Command

	configPath   string
	manifest     string
	intermediate string
	flavor       string
	maxArgs      int
	dryRun       bool
	emitHelpers  bool
}

func newGenerateCommand() *generateCommand {
	g := &generateCommand{}
	g.cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate LTTng tracepoint providers from an event manifest",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := g.run(); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	f := g.cmd.Flags()
	f.StringVar(&g.configPath, "config", config.DefaultPath, "Configuration file")
	f.StringVar(&g.manifest, "man", "", "Event manifest (.yaml, .yml, .xml or .man)")
	f.StringVar(&g.intermediate, "intermediate", "", "Directory the lttng/ output directory is created in")
	f.StringVar(&g.flavor, "runtime-flavor", "", "Runtime type tables: CoreCLR or Mono")
	f.IntVar(&g.maxArgs, "max-args", 0, "Largest parameter count emitted without packing")
	f.BoolVar(&g.dryRun, "dry-run", false, "Print the files that would be generated without writing them")
	f.BoolVar(&g.emitHelpers, "emit-helpers", false, "Also write lttng/eventprovhelpers.cpp")
	return g
}

// resolveConfig reads the configuration file and lays the explicitly set
// flags over it.
//
// Returns:
//   - *config.Config: The validated configuration with defaults applied.
//   - error: An error if the file is unreadable or the result is invalid.
func (g *generateCommand) resolveConfig() (*config.Config, error) {
	flags := g.cmd.Flags()

	cfg, err := config.Load(g.configPath)
	if err != nil {
		// The default file is optional; an explicitly named one is not.
		if flags.Changed("config") || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &config.Config{}
	}

	if flags.Changed("man") {
		cfg.Gen.Manifest = g.manifest
	}
	if flags.Changed("intermediate") {
		cfg.Gen.Intermediate = g.intermediate
	}
	if flags.Changed("runtime-flavor") {
		cfg.Gen.RuntimeFlavor = g.flavor
	}
	if flags.Changed("max-args") {
		cfg.Gen.MaxTracepointArgs = g.maxArgs
	}
	if flags.Changed("emit-helpers") {
		cfg.Gen.EmitHelpers = g.emitHelpers
	}

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Gen.Manifest == "" {
		return nil, fmt.Errorf("no manifest given (use --man or gen.manifest in %s)", g.configPath)
	}
	return cfg, nil
}

// run loads the manifest and executes the code generation process.
func (g *generateCommand) run() error {
	cfg, err := g.resolveConfig()
	if err != nil {
		return err
	}

	// A dry run creates no files, so it logs to stderr.
	logPath := cfg.Logging.Path
	if g.dryRun {
		logPath = ""
	}
	if err := log.Init(logPath, cfg.Logging.Level); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	m, err := manifest.Load(cfg.Gen.Manifest)
	if err != nil {
		return err
	}

	lopts, err := cfg.LttngOptions()
	if err != nil {
		return err
	}

	opts := generator.Options{
		Dir:         cfg.Gen.Intermediate,
		DryRun:      g.dryRun,
		EmitHelpers: cfg.Gen.EmitHelpers,
		Lttng:       lopts,
		Out:         g.cmd.OutOrStdout(),
	}

	res, err := generator.Generate(m, opts)
	if err != nil {
		return err
	}
	if g.dryRun {
		return nil
	}

	ui.PrintHeader(fmt.Sprintf("Generated %d provider(s) from %s (%s)", len(m.Providers), filepath.Base(cfg.Gen.Manifest), lopts.Flavor))
	for _, path := range res.Written {
		ui.PrintSuccess("written", path)
	}
	for _, path := range res.Unchanged {
		ui.PrintWarning("unchanged", path)
	}
	return nil
}
