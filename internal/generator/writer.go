package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// staged is a temporary file waiting to be renamed onto its destination.
type staged struct {
	tmp string
	dst string
}

// writeFiles persists a set of files as one unit. Changed files are first
// written to temporary siblings; they are renamed into place only once every
// temporary was written. Files whose content is already current are left
// untouched. The renames are not atomic as a group: a rename failing partway
// leaves the earlier files of the set already replaced.
func writeFiles(paths []string, contents map[string]string) (written, unchanged []string, err error) {
	var pending []staged
	cleanup := func(from int) {
		for _, s := range pending[from:] {
			os.Remove(s.tmp)
		}
	}

	for _, dst := range paths {
		content := contents[dst]

		same, err := sameContent(dst, content)
		if err != nil {
			cleanup(0)
			return nil, nil, err
		}
		if same {
			unchanged = append(unchanged, dst)
			continue
		}

		tmp, err := stage(dst, content)
		if err != nil {
			cleanup(0)
			return nil, nil, err
		}
		pending = append(pending, staged{tmp: tmp, dst: dst})
	}

	for i, s := range pending {
		if err := os.Rename(s.tmp, s.dst); err != nil {
			cleanup(i)
			return written, unchanged, fmt.Errorf("replacing %s: %w", s.dst, err)
		}
		written = append(written, s.dst)
	}

	return written, unchanged, nil
}

// stage writes content to a temporary file next to dst and returns its path.
func stage(dst, content string) (string, error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".tmp*")
	if err != nil {
		return "", fmt.Errorf("writing file %s: %w", dst, err)
	}
	tmp := f.Name()

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("writing file %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("writing file %s: %w", dst, err)
	}
	if err := os.Chmod(tmp, filePerm); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("writing file %s: %w", dst, err)
	}
	return tmp, nil
}

// sameContent reports whether path exists and holds exactly content.
func sameContent(path, content string) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return string(existing) == content, nil
}
