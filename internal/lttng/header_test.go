package lttng

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xll-gen/lttng-gen/internal/manifest"
)

func newTestGenerator(flavor Flavor) *generator {
	return &generator{
		provider:   "DotNETRuntime",
		flavor:     flavor,
		classifier: NewClassifier(0),
		special:    DefaultSpecialSizes(),
	}
}

func mustPlan(t *testing.T, g *generator, tmpl *manifest.Template) *Plan {
	t.Helper()
	p, err := g.classifier.Plan(tmpl)
	require.NoError(t, err)
	return p
}

func gcFinalizersEnd() *manifest.Template {
	return &manifest.Template{
		Name:   "GCFinalizersEnd",
		Params: []manifest.Parameter{{Name: "Count", Type: manifest.UInt32}},
	}
}

func TestTemplateClass_Simple(t *testing.T) {
	g := newTestGenerator(CoreCLR)
	got, err := g.templateClass(mustPlan(t, g, gcFinalizersEnd()))
	require.NoError(t, err)

	want := "\n" + `#define GCFinalizersEnd_TRACEPOINT_ARGS \
TP_ARGS( \
        const unsigned int, Count \
)
TRACEPOINT_EVENT_CLASS(
    DotNETRuntime,
    GCFinalizersEnd,
    GCFinalizersEnd_TRACEPOINT_ARGS,
    TP_FIELDS(
        ctf_integer(unsigned int, Count, Count)
    )
)

#define GCFinalizersEndT_TRACEPOINT_INSTANCE(name) \
TRACEPOINT_EVENT_INSTANCE(\
    DotNETRuntime,\
    GCFinalizersEnd,\
    name ,\
    GCFinalizersEnd_TRACEPOINT_ARGS \
)`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("templateClass mismatch (-want +got):\n%s", diff)
	}
}

func TestArgList_Packed(t *testing.T) {
	g := newTestGenerator(CoreCLR)
	args, err := g.argList(mustPlan(t, g, arrayTemplate()))
	require.NoError(t, err)
	assert.Equal(t, "TP_ARGS( \\\n        const unsigned int, length, \\\n        const char *, __data__ \\\n)\n", args)

	fields, err := g.fieldList(mustPlan(t, g, scalarTemplate("U", 10)))
	require.NoError(t, err)
	assert.Equal(t, "    TP_FIELDS(\n        ctf_integer(ULONG, length, length)\n        ctf_sequence(char, __data__, __data__, ULONG, length)\n    )\n)\n", fields)
}

func TestArgList_CountModifier(t *testing.T) {
	tmpl := &manifest.Template{
		Name: "ModuleLoad",
		Params: []manifest.Parameter{
			{Name: "ManagedPdbSignature", Type: manifest.GUID, Count: manifest.Count, SizeProperty: "sizeof(GUID)/sizeof(int)"},
			{Name: "ModuleILPath", Type: manifest.UnicodeString},
		},
	}

	g := newTestGenerator(CoreCLR)
	args, err := g.argList(mustPlan(t, g, tmpl))
	require.NoError(t, err)
	assert.Contains(t, args, "        const int*, ManagedPdbSignature, \\\n")
	assert.Contains(t, args, "        const char*, ModuleILPath \\\n")

	fields, err := g.fieldList(mustPlan(t, g, tmpl))
	require.NoError(t, err)
	assert.Contains(t, fields, "ctf_sequence(int, ManagedPdbSignature, ManagedPdbSignature, size_t, sizeof(GUID)/sizeof(int))")
	assert.Contains(t, fields, "ctf_string(ModuleILPath, ModuleILPath)")

	mono := newTestGenerator(Mono)
	args, err = mono.argList(mustPlan(t, mono, tmpl))
	require.NoError(t, err)
	assert.Contains(t, args, "const int32_t*, ManagedPdbSignature")
	assert.Contains(t, args, "const ep_char8_t*, ModuleILPath")
}

func TestFieldList_SizePropertyOverridesEncoding(t *testing.T) {
	// Every wire type with a size property renders as a length-tagged sequence.
	g := newTestGenerator(CoreCLR)
	for _, w := range manifest.WireTypes() {
		if w.IsStructural() || w == manifest.Struct {
			continue
		}
		tmpl := &manifest.Template{
			Name:   "Sized",
			Params: []manifest.Parameter{{Name: "v", Type: w, Count: manifest.Count, SizeProperty: "8"}},
		}
		fields, err := g.fieldList(mustPlan(t, g, tmpl))
		require.NoError(t, err, "%s", w)
		assert.Regexp(t, regexp.MustCompile(`ctf_sequence\([^,]+, v, v, size_t, 8\)`), fields, "%s", w)
	}
}

func TestFieldList_SequenceWithoutLayout(t *testing.T) {
	tmpl := &manifest.Template{
		Name:   "Raw",
		Params: []manifest.Parameter{{Name: "blob", Type: manifest.Binary}},
	}
	g := newTestGenerator(CoreCLR)
	_, err := g.fieldList(mustPlan(t, g, tmpl))
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestTemplateClass_ZeroParams(t *testing.T) {
	g := newTestGenerator(CoreCLR)
	tmpl := &manifest.Template{Name: "NoArgs"}
	p := mustPlan(t, g, tmpl)
	assert.Equal(t, Simple, p.Strategy)

	args, err := g.argList(p)
	require.NoError(t, err)
	assert.Equal(t, "TP_ARGS( \\\n)\n", args)

	fields, err := g.fieldList(p)
	require.NoError(t, err)
	assert.Equal(t, "    TP_FIELDS(\n\n    )\n)\n", fields)

	class, err := g.templateClass(p)
	require.NoError(t, err)
	assert.Contains(t, class, "#define NoArgsT_TRACEPOINT_INSTANCE(name)")
	assert.NotContains(t, class, emptyTemplate, "distinct from the shared empty template")
}

func TestHeader_InstancesFollowEvents(t *testing.T) {
	g := newTestGenerator(CoreCLR)
	prov := &manifest.Provider{
		Name:      "Microsoft-Windows-DotNETRuntime",
		Templates: []*manifest.Template{gcFinalizersEnd(), arrayTemplate()},
		Events: []*manifest.Event{
			{Symbol: "GCFinalizersEnd", Template: "GCFinalizersEnd"},
			{Symbol: "GCHeapCollect"},
			{Symbol: "ArrayEvent", Template: "T"},
			{Symbol: "GCFinalizersEnd_V1", Template: "GCFinalizersEnd"},
		},
	}
	plans, err := g.plan(prov)
	require.NoError(t, err)

	hdr, err := g.header(plans, prov.Events)
	require.NoError(t, err)

	re := regexp.MustCompile(`(?m)^(\w*)T_TRACEPOINT_INSTANCE\((\w+)\)$`)
	var got []string
	for _, m := range re.FindAllStringSubmatch(hdr, -1) {
		got = append(got, m[1]+":"+m[2])
	}
	assert.Equal(t, []string{
		"GCFinalizersEnd:GCFinalizersEnd",
		":GCHeapCollect",
		"T:ArrayEvent",
		"GCFinalizersEnd:GCFinalizersEnd_V1",
	}, got)

	assert.Equal(t, 1, strings.Count(hdr, "    emptyTemplate ,\n"), "one shared empty class")
	assert.Contains(t, hdr, "    TP_ARGS(),\n    TP_FIELDS()\n)\n#define T_TRACEPOINT_INSTANCE(name) \\\n")
	assert.Less(t, strings.Index(hdr, "#define GCFinalizersEnd_TRACEPOINT_ARGS"), strings.Index(hdr, "#define T_TRACEPOINT_ARGS"), "manifest order")
}

func TestHeader_Failures(t *testing.T) {
	g := newTestGenerator(CoreCLR)
	prov := &manifest.Provider{Name: "P", Templates: []*manifest.Template{gcFinalizersEnd()}}
	plans, err := g.plan(prov)
	require.NoError(t, err)

	_, err = g.header(plans, []*manifest.Event{{Template: "GCFinalizersEnd"}})
	assert.ErrorIs(t, err, ErrMissingSymbol)

	_, err = g.header(plans, []*manifest.Event{{Symbol: "E", Template: "Nope"}})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
