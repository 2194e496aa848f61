package lttng

import (
	"path/filepath"
	"strings"
)

// vendorPrefixes are stripped from raw provider names.
var vendorPrefixes = []string{"Windows-", "Microsoft-"}

// Names holds the forms of a provider name used in generated code and file names.
type Names struct {
	// Raw is the name as declared in the manifest.
	Raw string
	// Identifier is used for TRACEPOINT_PROVIDER and include guards
	// (e.g. "DotNETRuntime", "DotNETRuntimeStress").
	Identifier string
	// FileStem is used in file names (e.g. "dotnetruntime").
	FileStem string
}

// NamesOf derives the provider names from a raw manifest name.
func NamesOf(raw string) Names {
	name := raw
	for _, prefix := range vendorPrefixes {
		name = strings.ReplaceAll(name, prefix, "")
	}
	return Names{
		Raw:        raw,
		Identifier: strings.ReplaceAll(name, "-", "_"),
		FileStem:   strings.ToLower(strings.ReplaceAll(name, "-", "")),
	}
}

// HeaderName is the short name of the generated header, as included by the
// provider and probe files.
func (n Names) HeaderName() string {
	return "tp" + n.FileStem + ".h"
}

// Paths are the locations of a provider's generated files.
type Paths struct {
	Header   string
	Provider string
	Probe    string
}

// All returns the paths in write order.
func (p Paths) All() []string {
	return []string{p.Header, p.Provider, p.Probe}
}

// lttngDir is the subdirectory of the intermediate directory holding the generated files.
const lttngDir = "lttng"

// Paths returns the output paths below the intermediate directory dir.
func (n Names) Paths(dir string) Paths {
	base := filepath.Join(dir, lttngDir)
	return Paths{
		Header:   filepath.Join(base, n.HeaderName()),
		Provider: filepath.Join(base, "eventprov"+n.FileStem+".cpp"),
		Probe:    filepath.Join(base, "traceptprov"+n.FileStem+".cpp"),
	}
}

// HelpersPath is where the shared buffer helper implementation is written
// when helper emission is enabled.
func HelpersPath(dir string) string {
	return filepath.Join(dir, lttngDir, "eventprovhelpers.cpp")
}
