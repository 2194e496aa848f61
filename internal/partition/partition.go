// Package partition splits a directory's files into size-bounded buckets and
// lays the buckets out as numbered work item directories.
package partition

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xll-gen/lttng-gen/pkg/algo"
)

// Options selects the files considered by Scan.
type Options struct {
	// Extensions restricts the scan to these suffixes (e.g. ".dll"). Empty means all files.
	Extensions []string
	// ExcludeDirs are directory names that are not descended into.
	ExcludeDirs []string
	// ExcludeFiles are file names skipped regardless of case.
	ExcludeFiles []string
}

// Scan walks root and returns its regular files as items named by their
// path relative to root.
func Scan(root string, opts Options) ([]algo.Item, error) {
	excludeDirs := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		excludeDirs[d] = true
	}
	excludeFiles := make(map[string]bool, len(opts.ExcludeFiles))
	for _, f := range opts.ExcludeFiles {
		excludeFiles[strings.ToLower(f)] = true
	}

	var items []algo.Item
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && excludeDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || excludeFiles[strings.ToLower(d.Name())] || !hasExtension(d.Name(), opts.Extensions) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		items = append(items, algo.Item{Name: rel, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return items, nil
}

func hasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// BucketDir is the directory bucket index is copied to.
func BucketDir(dst string, index int) string {
	return filepath.Join(dst, strconv.Itoa(index), "binaries")
}

// Copy copies every bucket's files from root to BucketDir(dst, index),
// keeping their relative paths.
func Copy(root, dst string, buckets []algo.Bucket) error {
	for i, b := range buckets {
		dir := BucketDir(dst, i)
		for _, it := range b.Items {
			if err := copyFile(filepath.Join(root, it.Name), filepath.Join(dir, it.Name)); err != nil {
				return err
			}
		}
		slog.Debug("copied partition", "index", i, "files", len(b.Items), "bytes", b.Size)
	}
	return nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
