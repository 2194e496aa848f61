// Package assets embeds the C++ support sources that can be emitted next to
// the generated provider files.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed files/*
var assetsFS embed.FS

// Helpers is the implementation of ResizeBuffer and the WriteToBuffer
// overloads declared by every generated provider file.
const Helpers = "eventprovhelpers.cpp"

// AssetsMap maps asset file names to their content.
var AssetsMap = make(map[string]string)

func init() {
	err := fs.WalkDir(assetsFS, "files", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := assetsFS.ReadFile(path)
		if err != nil {
			return err
		}
		AssetsMap[d.Name()] = string(content)
		return nil
	})
	if err != nil {
		panic(err)
	}
}

// Get returns the content of the named asset.
func Get(name string) (string, error) {
	content, ok := AssetsMap[name]
	if !ok {
		return "", fmt.Errorf("asset %s not found", name)
	}
	return content, nil
}
