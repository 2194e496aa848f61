package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.dll"), "aaaa")
	writeFile(t, filepath.Join(src, "nested", "b.exe"), "bb")
	writeFile(t, filepath.Join(src, "notes.txt"), "ignored")
	dst := t.TempDir()
	out := captureUI(t)

	p := newPartitionCommand()
	require.NoError(t, p.cmd.ParseFlags([]string{"--max-size", "1", "--dst", dst}))
	require.NoError(t, p.run(src))

	assert.Contains(t, out.String(), "2 files with 6 bytes")
	assert.Contains(t, out.String(), "Total 1 partitions with 6 bytes.")

	_, err := os.Stat(filepath.Join(dst, "0", "binaries", "nested", "b.exe"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dst, "0", "binaries", "notes.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestPartition_InvalidSize(t *testing.T) {
	captureUI(t)
	p := newPartitionCommand()
	require.NoError(t, p.cmd.ParseFlags(nil))
	assert.ErrorContains(t, p.run(t.TempDir()), "invalid --max-size")
}
