package lttng

import (
	"fmt"

	"github.com/xll-gen/lttng-gen/internal/manifest"
)

// DefaultMaxArgs is the largest argument count the simple TP_ARGS form
// supports with the stock lttng-ust macro expansion.
const DefaultMaxArgs = 9

// Strategy is how an event's payload reaches the tracepoint.
type Strategy int

const (
	// Simple passes every parameter as its own tracepoint argument.
	Simple Strategy = iota
	// Packed serializes all parameters into a single length-prefixed buffer.
	Packed
)

func (s Strategy) String() string {
	if s == Packed {
		return "packed"
	}
	return "simple"
}

// Classifier decides the emission strategy of templates.
type Classifier struct {
	// MaxArgs is the argument count ceiling of the simple form.
	MaxArgs int
}

// NewClassifier returns a classifier with the given ceiling, or
// DefaultMaxArgs when maxArgs is not positive.
func NewClassifier(maxArgs int) Classifier {
	if maxArgs <= 0 {
		maxArgs = DefaultMaxArgs
	}
	return Classifier{MaxArgs: maxArgs}
}

// NeedsPacking reports whether t must use the packed strategy: too many
// parameters for the simple form, or any struct or array field.
func (c Classifier) NeedsPacking(t *manifest.Template) bool {
	return len(t.Params) > c.MaxArgs || len(t.Structs) > 0 || len(t.Arrays) > 0
}

// Field is a template parameter with its resolved encoding.
type Field struct {
	manifest.Parameter
	Encoding Encoding
}

// Plan is the classification of one template. The header and body
// generators both work from the same Plan.
type Plan struct {
	Template *manifest.Template
	Strategy Strategy
	Fields   []Field
}

// Plan classifies t and resolves the encoding of every parameter.
func (c Classifier) Plan(t *manifest.Template) (*Plan, error) {
	for name, count := range t.Structs {
		if err := checkCounted(t, "struct", name, count); err != nil {
			return nil, err
		}
	}
	for name, count := range t.Arrays {
		if err := checkCounted(t, "array", name, count); err != nil {
			return nil, err
		}
	}

	p := &Plan{Template: t, Strategy: Simple}
	if c.NeedsPacking(t) {
		p.Strategy = Packed
	}

	for _, param := range t.Params {
		f := Field{Parameter: param}
		if param.SizeProperty != "" {
			f.Encoding = Sequence
		} else {
			enc, err := EncodingOf(param.Type)
			if err != nil {
				return nil, fmt.Errorf("template %s parameter %s: %w", t.Name, param.Name, err)
			}
			f.Encoding = enc
		}
		p.Fields = append(p.Fields, f)
	}

	return p, nil
}

func checkCounted(t *manifest.Template, kind, name, count string) error {
	if _, ok := t.Param(name); !ok {
		return fmt.Errorf("%w: template %s: %s %q is not a parameter", manifest.ErrInvalidManifest, t.Name, kind, name)
	}
	if _, ok := t.Param(count); !ok || count == name {
		return fmt.Errorf("%w: template %s: %s %q is sized by %q, which is not another parameter", manifest.ErrInvalidManifest, t.Name, kind, name, count)
	}
	return nil
}
