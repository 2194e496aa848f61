package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xll-gen/lttng-gen/internal/partition"
	"github.com/xll-gen/lttng-gen/internal/ui"
	"github.com/xll-gen/lttng-gen/pkg/algo"
)

// bytesPerMB matches the decimal megabytes used for --max-size.
const bytesPerMB = 1000 * 1000

// partitionCommand holds the partition command and the values of its flags.
type partitionCommand struct {
	cmd *cobra.Command

	dst          string
	maxSizeMB    int64
	maxFiles     int
	extensions   []string
	excludeDirs  []string
	excludeFiles []string
}

func newPartitionCommand() *partitionCommand {
	p := &partitionCommand{}
	p.cmd = &cobra.Command{
		Use:   "partition <src>",
		Short: "Split a directory's files into size-bounded buckets (first fit)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := p.run(args[0]); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	f := p.cmd.Flags()
	f.StringVar(&p.dst, "dst", "", "Copy bucket i to <dst>/<i>/binaries")
	f.Int64Var(&p.maxSizeMB, "max-size", 0, "Bucket size limit in MB (required)")
	f.IntVar(&p.maxFiles, "max-files", algo.DefaultMaxItems, "Largest number of files per bucket")
	f.StringSliceVar(&p.extensions, "ext", []string{".dll", ".exe"}, "File extensions to include (empty for all)")
	f.StringSliceVar(&p.excludeDirs, "exclude-dir", nil, "Directory names to skip")
	f.StringSliceVar(&p.excludeFiles, "exclude-file", nil, "File names to skip (case-insensitive)")
	return p
}

// run partitions src and reports each bucket, copying them when --dst is set.
func (p *partitionCommand) run(src string) error {
	if p.maxSizeMB <= 0 {
		return fmt.Errorf("invalid --max-size: %d (must be a positive number of MB)", p.maxSizeMB)
	}

	items, err := partition.Scan(src, partition.Options{
		Extensions:   p.extensions,
		ExcludeDirs:  p.excludeDirs,
		ExcludeFiles: p.excludeFiles,
	})
	if err != nil {
		return err
	}

	buckets := algo.FirstFit(items, p.maxSizeMB*bytesPerMB, p.maxFiles)

	ui.PrintHeader(fmt.Sprintf("Partitioning files from %s", src))
	var total int64
	for i, b := range buckets {
		ui.PrintSuccess(fmt.Sprintf("Partition %d", i), fmt.Sprintf("%d files with %d bytes", len(b.Items), b.Size))
		total += b.Size
	}
	fmt.Fprintf(ui.Out, "Total %d partitions with %d bytes.\n", len(buckets), total)

	if p.dst == "" {
		return nil
	}
	return ui.RunSpinner(fmt.Sprintf("Copying to %s", p.dst), func() error {
		return partition.Copy(src, p.dst, buckets)
	})
}
