package lttng

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamesOf(t *testing.T) {
	tests := []struct {
		raw        string
		identifier string
		stem       string
	}{
		{"Microsoft-Windows-DotNETRuntime", "DotNETRuntime", "dotnetruntime"},
		{"Microsoft-Windows-DotNETRuntimeStress", "DotNETRuntimeStress", "dotnetruntimestress"},
		{"Microsoft-DotNETRuntimeMonoProfiler", "DotNETRuntimeMonoProfiler", "dotnetruntimemonoprofiler"},
		{"Contoso-Payments-Api", "Contoso_Payments_Api", "contosopaymentsapi"},
		{"Plain", "Plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			n := NamesOf(tt.raw)
			assert.Equal(t, tt.raw, n.Raw)
			assert.Equal(t, tt.identifier, n.Identifier)
			assert.Equal(t, tt.stem, n.FileStem)
		})
	}
}

func TestNames_Paths(t *testing.T) {
	n := NamesOf("Microsoft-Windows-DotNETRuntime")
	assert.Equal(t, "tpdotnetruntime.h", n.HeaderName())

	p := n.Paths("obj")
	assert.Equal(t, filepath.Join("obj", "lttng", "tpdotnetruntime.h"), p.Header)
	assert.Equal(t, filepath.Join("obj", "lttng", "eventprovdotnetruntime.cpp"), p.Provider)
	assert.Equal(t, filepath.Join("obj", "lttng", "traceptprovdotnetruntime.cpp"), p.Probe)
	assert.Equal(t, []string{p.Header, p.Provider, p.Probe}, p.All())

	assert.Equal(t, filepath.Join("obj", "lttng", "eventprovhelpers.cpp"), HelpersPath("obj"))
}
