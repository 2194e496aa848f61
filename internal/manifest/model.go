package manifest

import "errors"

// ErrInvalidManifest is returned when a manifest cannot be turned into the
// template/event model (dangling count references, conflicting attributes).
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest is the parsed form of an event manifest.
type Manifest struct {
	Providers []*Provider
}

// Provider is a named collection of templates and events sharing one
// generated file triple.
type Provider struct {
	// Name is the raw provider name as declared in the manifest
	// (e.g. "Microsoft-Windows-DotNETRuntime").
	Name string
	// GUID is the normalized provider GUID, or empty when the manifest has none.
	GUID string
	// Templates are kept in manifest order.
	Templates []*Template
	// Events are kept in manifest order.
	Events []*Event
}

// Template returns the template with the given name.
func (p *Provider) Template(name string) (*Template, bool) {
	for _, t := range p.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Template is a reusable argument/field shape referenced by events.
type Template struct {
	Name string
	// Params is ordered: the order is both the call signature and the
	// serialized field order.
	Params []Parameter
	// Structs maps struct parameter names to the parameter holding their element count.
	Structs map[string]string
	// Arrays maps array parameter names to the parameter holding their element count.
	Arrays map[string]string
	// EstimatedSize sizes the on-stack buffer used by packed emission.
	EstimatedSize int
}

// Param returns the parameter with the given name.
func (t *Template) Param(name string) (Parameter, bool) {
	for _, p := range t.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// IsStruct reports whether name is an embedded struct parameter.
func (t *Template) IsStruct(name string) bool {
	_, ok := t.Structs[name]
	return ok
}

// IsArray reports whether name is a counted array parameter.
func (t *Template) IsArray(name string) bool {
	_, ok := t.Arrays[name]
	return ok
}

// Parameter is a single template argument.
type Parameter struct {
	Name string
	Type WireType
	// Count is Null for scalars and Count for counted repetitions (pointers).
	Count WireType
	// SizeProperty names the parameter holding the element count, or carries
	// a literal size expression. Empty for plain scalars.
	SizeProperty string
}

// Event is a single named tracepoint.
type Event struct {
	Symbol string
	// Template is empty for events without payload.
	Template string
}
