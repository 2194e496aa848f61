package lttng

import (
	"fmt"
	"strings"

	"github.com/xll-gen/lttng-gen/internal/manifest"
	"github.com/xll-gen/lttng-gen/internal/templates"
	"github.com/xll-gen/lttng-gen/version"
)

// Options configures a generation pass. The same options apply to every
// provider of a run.
type Options struct {
	// Flavor selects the concrete type tables.
	Flavor Flavor
	// MaxArgs is the argument ceiling of the simple strategy; 0 means DefaultMaxArgs.
	MaxArgs int
	// SpecialSizes overrides the serialized size of specific struct/array
	// fields. nil means DefaultSpecialSizes.
	SpecialSizes SpecialSizes
}

// Files is the rendered output of one provider.
type Files struct {
	Names    Names
	Header   string
	Provider string
	Probe    string
}

// Contents returns the file contents keyed by their path below dir.
func (f *Files) Contents(dir string) map[string]string {
	p := f.Names.Paths(dir)
	return map[string]string{
		p.Header:   f.Header,
		p.Provider: f.Provider,
		p.Probe:    f.Probe,
	}
}

// generator holds the per-provider rendering state.
type generator struct {
	provider   string
	flavor     Flavor
	classifier Classifier
	special    SpecialSizes
}

// planSet is the classification of every template of a provider, computed once.
type planSet struct {
	ordered []*Plan
	byName  map[string]*Plan
}

func (g *generator) plan(p *manifest.Provider) (*planSet, error) {
	ps := &planSet{byName: make(map[string]*Plan, len(p.Templates))}
	for _, t := range p.Templates {
		plan, err := g.classifier.Plan(t)
		if err != nil {
			return nil, err
		}
		ps.ordered = append(ps.ordered, plan)
		ps.byName[t.Name] = plan
	}
	return ps, nil
}

// forEvent resolves the plan of an event's template. It returns nil for
// events bound to the shared empty template.
func (ps *planSet) forEvent(ev *manifest.Event) (*Plan, error) {
	if ev.Symbol == "" {
		if ev.Template != "" {
			return nil, fmt.Errorf("%w (template %s)", ErrMissingSymbol, ev.Template)
		}
		return nil, ErrMissingSymbol
	}
	if ev.Template == "" {
		return nil, nil
	}
	p, ok := ps.byName[ev.Template]
	if !ok {
		return nil, fmt.Errorf("%w: event %s references %q", ErrUnknownTemplate, ev.Symbol, ev.Template)
	}
	return p, nil
}

// providerBody renders the emission functions of every event.
func (g *generator) providerBody(plans *planSet, events []*manifest.Event) (string, error) {
	var b strings.Builder
	for _, ev := range events {
		p, err := plans.forEvent(ev)
		if err != nil {
			return "", err
		}
		fns, err := g.eventFunctions(ev, p)
		if err != nil {
			return "", fmt.Errorf("event %s: %w", ev.Symbol, err)
		}
		b.WriteString(fns)
	}
	return b.String(), nil
}

// fileData is the data handed to the file templates.
type fileData struct {
	Provider   string
	RawName    string
	GUID       string
	Flavor     string
	Version    string
	HeaderName string
	Body       string
}

// Render produces the header, provider and probe files of p. Rendering has
// no side effects; nothing is returned unless all three files rendered.
func Render(p *manifest.Provider, opts Options) (*Files, error) {
	names := NamesOf(p.Name)

	special := opts.SpecialSizes
	if special == nil {
		special = DefaultSpecialSizes()
	}

	g := &generator{
		provider:   names.Identifier,
		flavor:     opts.Flavor,
		classifier: NewClassifier(opts.MaxArgs),
		special:    special,
	}

	plans, err := g.plan(p)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", p.Name, err)
	}

	hdrBody, err := g.header(plans, p.Events)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", p.Name, err)
	}
	provBody, err := g.providerBody(plans, p.Events)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", p.Name, err)
	}

	data := fileData{
		Provider:   names.Identifier,
		RawName:    p.Name,
		GUID:       p.GUID,
		Flavor:     opts.Flavor.String(),
		Version:    version.Version,
		HeaderName: names.HeaderName(),
	}

	files := &Files{Names: names}

	data.Body = hdrBody
	if files.Header, err = renderFile("header.h.tmpl", data); err != nil {
		return nil, err
	}
	data.Body = provBody
	if files.Provider, err = renderFile("eventprov.cpp.tmpl", data); err != nil {
		return nil, err
	}
	data.Body = ""
	if files.Probe, err = renderFile("traceptprov.cpp.tmpl", data); err != nil {
		return nil, err
	}

	return files, nil
}

// renderFile executes a file template together with the shared prolog.
func renderFile(name string, data fileData) (string, error) {
	return templates.Render(name, data, "prolog.tmpl")
}
