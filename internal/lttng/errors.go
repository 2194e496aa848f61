package lttng

import "errors"

// Generation errors. Any of them aborts the run for the whole invocation.
var (
	// ErrMissingSymbol is returned for an event without a symbol.
	ErrMissingSymbol = errors.New("event does not have a symbol")
	// ErrUnknownTemplate is returned when an event names a template the provider does not declare.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrUnmappedType is returned when a wire type has no entry in a type table.
	ErrUnmappedType = errors.New("unmapped wire type")
	// ErrStructuralType is returned when a placeholder type is used as a field type.
	ErrStructuralType = errors.New("structural wire type")
	// ErrUnsupportedEncoding is returned for a field whose encoding needs an
	// explicit memory layout that the manifest does not provide.
	ErrUnsupportedEncoding = errors.New("unsupported field encoding")
)
