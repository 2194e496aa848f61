package lttng

import (
	"fmt"
	"strings"

	"github.com/xll-gen/lttng-gen/internal/manifest"
)

// emptyTemplate is the event class shared by every event without payload.
const emptyTemplate = "emptyTemplate"

// argList renders the TP_ARGS(...) definition of a template.
func (g *generator) argList(p *Plan) (string, error) {
	var b strings.Builder
	b.WriteString("TP_ARGS( \\\n")

	if p.Strategy == Packed {
		b.WriteString("        const unsigned int, length, \\\n")
		b.WriteString("        const char *, __data__ \\\n")
		b.WriteString(")\n")
		return b.String(), nil
	}

	args := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		typ, err := LttngType(g.flavor, f.Type)
		if err != nil {
			return "", fmt.Errorf("template %s parameter %s: %w", p.Template.Name, f.Name, err)
		}
		countMod, err := LttngType(g.flavor, f.Count)
		if err != nil {
			return "", fmt.Errorf("template %s parameter %s: %w", p.Template.Name, f.Name, err)
		}
		args = append(args, "        "+withCount(typ, countMod)+", "+f.Name)
	}
	if len(args) > 0 {
		b.WriteString(strings.Join(args, ", \\\n"))
		b.WriteString(" \\\n")
	}
	b.WriteString(")\n")
	return b.String(), nil
}

// fieldList renders the TP_FIELDS(...) block closing a TRACEPOINT_EVENT_CLASS.
func (g *generator) fieldList(p *Plan) (string, error) {
	var b strings.Builder
	b.WriteString("    TP_FIELDS(\n")

	if p.Strategy == Packed {
		b.WriteString("        ctf_integer(ULONG, length, length)\n")
		b.WriteString("        ctf_sequence(char, __data__, __data__, ULONG, length)")
		b.WriteString("\n    )\n)\n")
		return b.String(), nil
	}

	fields := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		typ, err := LttngType(g.flavor, f.Type)
		if err != nil {
			return "", fmt.Errorf("template %s parameter %s: %w", p.Template.Name, f.Name, err)
		}
		typ = strings.ReplaceAll(typ, "const ", "")

		var body string
		enc := f.Encoding
		switch {
		case f.SizeProperty != "":
			// An explicit element count always describes a sequence.
			enc = Sequence
			body = strings.Join([]string{typ, f.Name, f.Name, "size_t", f.SizeProperty}, ", ")
		case enc == String:
			body = f.Name + ", " + f.Name
		case enc == Integer || enc == Float:
			body = strings.Join([]string{typ, f.Name, f.Name}, ", ")
		case enc == Sequence:
			return "", fmt.Errorf("%w: template %s parameter %s: %s needs its memory explicitly laid out", ErrUnsupportedEncoding, p.Template.Name, f.Name, enc.Macro())
		default:
			return "", fmt.Errorf("%w: template %s parameter %s: no such ctf intrinsic %s", ErrUnsupportedEncoding, p.Template.Name, f.Name, enc)
		}
		fields = append(fields, fmt.Sprintf("        %s(%s)", enc.Macro(), body))
	}
	b.WriteString(strings.Join(fields, "\n"))
	b.WriteString("\n    )\n)\n")
	return b.String(), nil
}

// templateClass renders the args macro, event class and instance macro of one template.
func (g *generator) templateClass(p *Plan) (string, error) {
	name := p.Template.Name

	args, err := g.argList(p)
	if err != nil {
		return "", err
	}
	fields, err := g.fieldList(p)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n#define %s_TRACEPOINT_ARGS \\\n", name)
	b.WriteString(args)
	b.WriteString("TRACEPOINT_EVENT_CLASS(\n")
	fmt.Fprintf(&b, "    %s,\n", g.provider)
	fmt.Fprintf(&b, "    %s,\n", name)
	fmt.Fprintf(&b, "    %s_TRACEPOINT_ARGS,\n", name)
	b.WriteString(fields)
	fmt.Fprintf(&b, "\n#define %s", instanceMacro(name))
	b.WriteString("(name) \\\nTRACEPOINT_EVENT_INSTANCE(\\\n")
	fmt.Fprintf(&b, "    %s,\\\n", g.provider)
	fmt.Fprintf(&b, "    %s,\\\n", name)
	b.WriteString("    name ,\\\n")
	fmt.Fprintf(&b, "    %s_TRACEPOINT_ARGS \\\n)", name)
	return b.String(), nil
}

// emptyClass renders the shared payload-less event class.
func (g *generator) emptyClass() string {
	var b strings.Builder
	b.WriteString("\n\nTRACEPOINT_EVENT_CLASS(\n")
	fmt.Fprintf(&b, "    %s,\n", g.provider)
	fmt.Fprintf(&b, "    %s ,\n", emptyTemplate)
	b.WriteString("    TP_ARGS(),\n")
	b.WriteString("    TP_FIELDS()\n)\n")
	fmt.Fprintf(&b, "#define %s(name) \\\nTRACEPOINT_EVENT_INSTANCE(\\\n", instanceMacro(""))
	fmt.Fprintf(&b, "    %s,\\\n", g.provider)
	fmt.Fprintf(&b, "    %s,\\\n", emptyTemplate)
	b.WriteString("    name ,\\\n")
	b.WriteString("    TP_ARGS()\\\n)")
	return b.String()
}

// instanceMacro is the name of the instance-binding macro of a template;
// the empty template name yields the shared T_TRACEPOINT_INSTANCE.
func instanceMacro(template string) string {
	return template + "T_TRACEPOINT_INSTANCE"
}

// header renders everything between the include guard of the generated header:
// one class per template, the shared empty class, and one instance per event.
func (g *generator) header(plans *planSet, events []*manifest.Event) (string, error) {
	var b strings.Builder

	for _, p := range plans.ordered {
		class, err := g.templateClass(p)
		if err != nil {
			return "", err
		}
		b.WriteString(class)
	}

	b.WriteString(g.emptyClass())
	b.WriteString("\n")

	for _, ev := range events {
		if _, err := plans.forEvent(ev); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s(%s)\n", instanceMacro(ev.Template), ev.Symbol)
	}

	return b.String(), nil
}
