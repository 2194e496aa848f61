package manifest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// guidSizeProperty is the element count expression used for GUID fields,
	// which are traced as a sequence of ints.
	guidSizeProperty = "sizeof(GUID)/sizeof(int)"

	minEstimatedSize = 32
	maxEstimatedSize = 1024

	stringEstimate   = 32
	variableEstimate = 64
)

// rawData is a format-independent data element of a template.
type rawData struct {
	Name   string
	InType string
	Count  string
	Length string
}

// rawStruct is a format-independent struct element of a template.
type rawStruct struct {
	Name  string
	Count string
}

type rawTemplate struct {
	Name          string
	Data          []rawData
	Structs       []rawStruct
	EstimatedSize int
}

type rawEvent struct {
	Symbol   string
	Template string
}

type rawProvider struct {
	Name      string
	GUID      string
	Templates []rawTemplate
	Events    []rawEvent
}

// buildProvider converts a decoded provider into the model. Both the YAML and
// the XML loader funnel through here so the count/length rules are identical.
func buildProvider(rp rawProvider) (*Provider, error) {
	if rp.Name == "" {
		return nil, fmt.Errorf("%w: provider without a name", ErrInvalidManifest)
	}

	p := &Provider{Name: rp.Name}

	if rp.GUID != "" {
		id, err := uuid.Parse(rp.GUID)
		if err != nil {
			return nil, fmt.Errorf("%w: provider %s: guid %q: %v", ErrInvalidManifest, rp.Name, rp.GUID, err)
		}
		p.GUID = id.String()
	}

	seen := make(map[string]bool, len(rp.Templates))
	for _, rt := range rp.Templates {
		if seen[rt.Name] {
			return nil, fmt.Errorf("%w: provider %s: duplicate template %q", ErrInvalidManifest, rp.Name, rt.Name)
		}
		seen[rt.Name] = true

		t, err := buildTemplate(rt)
		if err != nil {
			return nil, fmt.Errorf("provider %s: %w", rp.Name, err)
		}
		p.Templates = append(p.Templates, t)
	}

	// Symbols and template references are checked by the generator, which
	// owns those failure modes.
	for _, re := range rp.Events {
		p.Events = append(p.Events, &Event{Symbol: re.Symbol, Template: re.Template})
	}

	return p, nil
}

func buildTemplate(rt rawTemplate) (*Template, error) {
	if rt.Name == "" {
		return nil, fmt.Errorf("%w: template without a name", ErrInvalidManifest)
	}

	t := &Template{
		Name:    rt.Name,
		Structs: map[string]string{},
		Arrays:  map[string]string{},
	}

	for _, d := range rt.Data {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: template %s: data element without a name", ErrInvalidManifest, rt.Name)
		}
		if _, dup := t.Param(d.Name); dup {
			return nil, fmt.Errorf("%w: template %s: duplicate parameter %q", ErrInvalidManifest, rt.Name, d.Name)
		}

		wt, err := ParseWireType(d.InType)
		if err != nil {
			return nil, fmt.Errorf("template %s parameter %s: %w", rt.Name, d.Name, err)
		}

		count := d.Count
		if d.Length != "" {
			if count != "" {
				return nil, fmt.Errorf("%w: template %s: both count and length found on %q", ErrInvalidManifest, rt.Name, d.Name)
			}
			count = d.Length
		}
		if n, err := strconv.Atoi(count); err == nil && n == 1 {
			count = ""
		}

		param := Parameter{Name: d.Name, Type: wt, Count: Null}
		if count != "" {
			param.Count = Count
			if isDigits(count) {
				param.SizeProperty = count
			} else if _, ok := t.Param(count); ok {
				param.SizeProperty = count
				t.Arrays[d.Name] = count
			} else {
				return nil, fmt.Errorf("%w: template %s: count %q of %q does not name an earlier parameter", ErrInvalidManifest, rt.Name, count, d.Name)
			}
		}
		if wt == GUID {
			param.Count = Count
			param.SizeProperty = guidSizeProperty
		}

		t.Params = append(t.Params, param)
	}

	for _, s := range rt.Structs {
		if s.Count == "" {
			return nil, fmt.Errorf("%w: struct %q in template %s does not have a count", ErrInvalidManifest, s.Name, rt.Name)
		}
		if _, ok := t.Param(s.Count); !ok {
			return nil, fmt.Errorf("%w: struct %q in template %s: count %q is not a parameter", ErrInvalidManifest, s.Name, rt.Name, s.Count)
		}
		if _, dup := t.Param(s.Name); dup {
			return nil, fmt.Errorf("%w: template %s: duplicate parameter %q", ErrInvalidManifest, rt.Name, s.Name)
		}
		t.Structs[s.Name] = s.Count
		t.Params = append(t.Params, Parameter{
			Name:         s.Name,
			Type:         Struct,
			Count:        Count,
			SizeProperty: s.Count,
		})
	}

	t.EstimatedSize = rt.EstimatedSize
	if t.EstimatedSize <= 0 {
		t.EstimatedSize = EstimateSize(t)
	}

	return t, nil
}

// EstimateSize returns a rough serialized size for a template, used to size
// the fixed stack buffer of packed emission. Scalars count their exact size,
// strings and variable-length data a flat estimate, and the total is clamped
// to [32, 1024].
func EstimateSize(t *Template) int {
	total := 0
	for _, p := range t.Params {
		switch {
		case t.IsStruct(p.Name) || t.IsArray(p.Name):
			total += variableEstimate
		case p.Type == AnsiString || p.Type == UnicodeString:
			total += stringEstimate
		case p.Type == Binary:
			total += variableEstimate
		default:
			total += p.Type.fixedSize()
		}
	}
	if total < minEstimatedSize {
		return minEstimatedSize
	}
	if total > maxEstimatedSize {
		return maxEstimatedSize
	}
	return total
}

func isDigits(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}
