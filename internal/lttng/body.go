package lttng

import (
	"fmt"
	"strings"

	"github.com/xll-gen/lttng-gen/internal/manifest"
)

// paramIndent prefixes every parameter of a generated FireEtXplat signature.
const paramIndent = "    "

// eventFunctions renders the EventXplatEnabled guard and the FireEtXplat
// emitter of one event. p is nil for events without a template.
func (g *generator) eventFunctions(ev *manifest.Event, p *Plan) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "extern \"C\" BOOL  EventXplatEnabled%s(){ return tracepoint_enabled(%s, %s); }\n\n", ev.Symbol, g.provider, ev.Symbol)

	sig, err := g.signature(p)
	if err != nil {
		return "", err
	}
	if sig == "" {
		fmt.Fprintf(&b, "extern \"C\" ULONG  FireEtXplat%s()\n{\n", ev.Symbol)
	} else {
		fmt.Fprintf(&b, "extern \"C\" ULONG  FireEtXplat%s(\n%s\n)\n{\n", ev.Symbol, sig)
	}

	fmt.Fprintf(&b, "    if (!EventXplatEnabled%s())\n", ev.Symbol)
	b.WriteString("        return ERROR_SUCCESS;\n")

	body, err := g.methodBody(ev, p)
	if err != nil {
		return "", err
	}
	b.WriteString(body)

	b.WriteString("\n    return ERROR_SUCCESS;\n}\n\n")
	return b.String(), nil
}

// signature renders the PAL-typed parameter list of a FireEtXplat function.
// Struct parameters are preceded by their element size.
func (g *generator) signature(p *Plan) (string, error) {
	if p == nil {
		return "", nil
	}

	params := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		typ, err := PalType(g.flavor, f.Type)
		if err != nil {
			return "", fmt.Errorf("template %s parameter %s: %w", p.Template.Name, f.Name, err)
		}
		countMod, err := PalType(g.flavor, f.Count)
		if err != nil {
			return "", fmt.Errorf("template %s parameter %s: %w", p.Template.Name, f.Name, err)
		}

		if p.Template.IsStruct(f.Name) {
			params = append(params, fmt.Sprintf("%sint %s_ElementSize", paramIndent, f.Name))
		}
		params = append(params, paramIndent+withCount(typ, countMod)+" "+f.Name)
	}
	return strings.Join(params, ",\n"), nil
}

// methodBody renders everything after the enabled guard.
func (g *generator) methodBody(ev *manifest.Event, p *Plan) (string, error) {
	if p == nil {
		return fmt.Sprintf("\n    do_tracepoint(%s, %s);\n", g.provider, ev.Symbol), nil
	}

	var b strings.Builder
	for _, f := range p.Fields {
		if g.convertsWide(f) {
			g.openNarrowBuffer(&b, f.Name)
		}
	}
	b.WriteString("\n")

	var (
		rest string
		err  error
	)
	if p.Strategy == Packed {
		rest, err = g.packedBody(ev, p)
	} else {
		rest, err = g.simpleBody(ev, p)
	}
	if err != nil {
		return "", err
	}
	b.WriteString(rest)
	return b.String(), nil
}

// convertsWide reports whether a parameter arrives as a wide string that has
// to be narrowed before tracing.
func (g *generator) convertsWide(f Field) bool {
	// Mono maps win:UnicodeString to const ep_char8_t*, already UTF-8.
	return g.flavor == CoreCLR && f.Type == manifest.UnicodeString
}

func (g *generator) openNarrowBuffer(b *strings.Builder, name string) {
	fmt.Fprintf(b, "    INT %s_path_size = -1;\n", name)
	fmt.Fprintf(b, "    PathCharString %s_PS;\n", name)
	fmt.Fprintf(b, "    INT %s_full_name_path_size = (wcslen(%s) + 1)*sizeof(WCHAR);\n", name, name)
	fmt.Fprintf(b, "    CHAR* %s_full_name = %s_PS.OpenStringBuffer(%s_full_name_path_size);\n", name, name, name)
	fmt.Fprintf(b, "    if (%s_full_name == NULL)\n", name)
	b.WriteString("        return ERROR_WRITE_FAULT;\n")
}

func (g *generator) simpleBody(ev *manifest.Event, p *Plan) (string, error) {
	var conv strings.Builder
	args := []string{fmt.Sprintf("    do_tracepoint(%s,\n        %s", g.provider, ev.Symbol)}

	for _, f := range p.Fields {
		switch {
		case f.Encoding == String && g.convertsWide(f):
			n := f.Name
			fmt.Fprintf(&conv, "    %s_path_size = WideCharToMultiByte(CP_ACP, 0, %s, -1, %s_full_name, %s_full_name_path_size, NULL, NULL);\n", n, n, n, n)
			fmt.Fprintf(&conv, "    _ASSERTE(%s_path_size < %s_full_name_path_size);\n", n, n)
			fmt.Fprintf(&conv, "    %s_PS.CloseBuffer(%s_path_size);\n", n, n)
			fmt.Fprintf(&conv, "    if (%s_path_size == 0)\n", n)
			conv.WriteString("        return ERROR_INVALID_PARAMETER;\n")
			args = append(args, "        "+n+"_full_name")

		case f.Encoding == Sequence || f.Type == manifest.Pointer:
			typ, err := LttngType(g.flavor, f.Type)
			if err != nil {
				return "", fmt.Errorf("template %s parameter %s: %w", p.Template.Name, f.Name, err)
			}
			countMod, err := LttngType(g.flavor, f.Count)
			if err != nil {
				return "", fmt.Errorf("template %s parameter %s: %w", p.Template.Name, f.Name, err)
			}
			args = append(args, fmt.Sprintf("        (%s) %s", withCount(typ, countMod), f.Name))

		default:
			args = append(args, "        "+f.Name)
		}
	}

	return conv.String() + strings.Join(args, ",\n") + ");\n", nil
}

func (g *generator) packedBody(ev *manifest.Event, p *Plan) (string, error) {
	t := p.Template

	writes := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		w, err := g.bufferWrite(t, f)
		if err != nil {
			return "", err
		}
		writes = append(writes, "    success &= "+w+";")
	}

	size := t.EstimatedSize
	if size <= 0 {
		size = manifest.EstimateSize(t)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "    size_t size = %d;\n", size)
	fmt.Fprintf(&b, "    char stackBuffer[%d];\n", size)
	b.WriteString("    char *buffer = stackBuffer;\n")
	b.WriteString("    size_t offset = 0;\n")
	b.WriteString("\n    bool fixedBuffer = true;\n")
	b.WriteString("    bool success = true;\n")
	b.WriteString(strings.Join(writes, "\n"))
	b.WriteString("\n\n")
	b.WriteString("    if (!success)\n    {\n")
	b.WriteString("        if (!fixedBuffer)\n            delete[] buffer;\n")
	b.WriteString("        return ERROR_WRITE_FAULT;\n    }\n\n")
	fmt.Fprintf(&b, "    do_tracepoint(%s, %s, offset, buffer);\n", g.provider, ev.Symbol)
	b.WriteString("\n    if (!fixedBuffer)\n        delete[] buffer;\n")
	return b.String(), nil
}

// bufferWrite renders the WriteToBuffer call serializing one field.
func (g *generator) bufferWrite(t *manifest.Template, f Field) (string, error) {
	const tail = "buffer, offset, size, fixedBuffer"

	switch {
	case t.IsStruct(f.Name):
		size := fmt.Sprintf("(int)%s_ElementSize * (int)%s", f.Name, f.SizeProperty)
		if expr, ok := g.special.Lookup(t.Name, f.Name); ok {
			size = fmt.Sprintf("(int)(%s)", expr)
		}
		return fmt.Sprintf("WriteToBuffer((const BYTE *)%s, %s, %s)", f.Name, size, tail), nil

	case t.IsArray(f.Name):
		typ, err := LttngType(g.flavor, f.Type)
		if err != nil {
			return "", fmt.Errorf("template %s parameter %s: %w", t.Name, f.Name, err)
		}
		size := fmt.Sprintf("sizeof(%s) * (int)%s", typ, f.SizeProperty)
		if expr, ok := g.special.Lookup(t.Name, f.Name); ok {
			size = fmt.Sprintf("(int)(%s)", expr)
		}
		return fmt.Sprintf("WriteToBuffer((const BYTE *)%s, %s, %s)", f.Name, size, tail), nil

	case f.Type == manifest.GUID:
		return fmt.Sprintf("WriteToBuffer(*%s, %s)", f.Name, tail), nil

	default:
		return fmt.Sprintf("WriteToBuffer(%s, %s)", f.Name, tail), nil
	}
}
