package generator

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/xll-gen/lttng-gen/internal/assets"
	"github.com/xll-gen/lttng-gen/internal/lttng"
	"github.com/xll-gen/lttng-gen/internal/manifest"
)

// Options contains the settings of one generation run.
type Options struct {
	// Dir is the intermediate directory; files go to Dir/lttng.
	Dir string
	// DryRun lists the output paths on Out instead of writing anything.
	DryRun bool
	// EmitHelpers also writes the buffer helper implementation.
	EmitHelpers bool
	// Lttng configures rendering.
	Lttng lttng.Options
	// Out receives the dry-run listing. nil discards it.
	Out io.Writer
}

// Result reports what a run did with each output path.
type Result struct {
	// Written are the files that were created or replaced.
	Written []string
	// Unchanged are the files that already had the generated content.
	Unchanged []string
	// Planned are the files a dry run would produce.
	Planned []string
}

// Generate renders every provider of m and persists the result.
//
// All providers are rendered before anything touches the disk, so a failure
// in any of them leaves the output directory as it was.
//
// Parameters:
//   - m: The loaded manifest.
//   - opts: Output and rendering options.
//
// Returns:
//   - *Result: The paths written, skipped or planned.
//   - error: An error if rendering or writing fails.
func Generate(m *manifest.Manifest, opts Options) (*Result, error) {
	rendered, err := renderAll(m.Providers, opts.Lttng)
	if err != nil {
		return nil, err
	}

	if err := checkCollisions(rendered, opts.Dir); err != nil {
		return nil, err
	}

	res := &Result{}
	if opts.DryRun {
		out := opts.Out
		if out == nil {
			out = io.Discard
		}
		for _, f := range rendered {
			for _, path := range f.Names.Paths(opts.Dir).All() {
				fmt.Fprintln(out, path)
				res.Planned = append(res.Planned, path)
			}
		}
		if opts.EmitHelpers {
			path := lttng.HelpersPath(opts.Dir)
			fmt.Fprintln(out, path)
			res.Planned = append(res.Planned, path)
		}
		return res, nil
	}

	for _, f := range rendered {
		written, unchanged, err := writeFiles(f.Names.Paths(opts.Dir).All(), f.Contents(opts.Dir))
		res.Written = append(res.Written, written...)
		res.Unchanged = append(res.Unchanged, unchanged...)
		if err != nil {
			return res, fmt.Errorf("provider %s: %w", f.Names.Raw, err)
		}
		slog.Info("generated provider", "provider", f.Names.Raw, "written", len(written), "unchanged", len(unchanged))
	}

	if opts.EmitHelpers {
		content, err := assets.Get(assets.Helpers)
		if err != nil {
			return res, err
		}
		path := lttng.HelpersPath(opts.Dir)
		written, unchanged, err := writeFiles([]string{path}, map[string]string{path: content})
		res.Written = append(res.Written, written...)
		res.Unchanged = append(res.Unchanged, unchanged...)
		if err != nil {
			return res, err
		}
		slog.Debug("emitted buffer helpers", "path", path)
	}

	return res, nil
}

// renderAll renders the providers concurrently, keeping manifest order.
func renderAll(providers []*manifest.Provider, opts lttng.Options) ([]*lttng.Files, error) {
	rendered := make([]*lttng.Files, len(providers))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range providers {
		g.Go(func() error {
			slog.Debug("rendering provider", "provider", p.Name, "templates", len(p.Templates), "events", len(p.Events))
			files, err := lttng.Render(p, opts)
			if err != nil {
				return err
			}
			rendered[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rendered, nil
}

// checkCollisions rejects providers whose names map to the same files.
func checkCollisions(rendered []*lttng.Files, dir string) error {
	owner := make(map[string]string)
	for _, f := range rendered {
		path := f.Names.Paths(dir).Header
		if prev, ok := owner[path]; ok {
			return fmt.Errorf("%w: providers %s and %s both generate %s", manifest.ErrInvalidManifest, prev, f.Names.Raw, path)
		}
		owner[path] = f.Names.Raw
	}
	return nil
}
