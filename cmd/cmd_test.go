package cmd

import (
	"bytes"
	"testing"

	"github.com/xll-gen/lttng-gen/internal/ui"
)

// captureUI redirects human-facing output for the duration of the test.
func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := ui.Out
	ui.Out = &buf
	t.Cleanup(func() { ui.Out = prev })
	return &buf
}
