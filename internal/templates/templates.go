// Package templates holds the embedded text templates used to assemble the
// generated files and the project scaffolding.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed *.tmpl
var templatesFS embed.FS

// Get returns the content of the specified template file.
func Get(name string) (string, error) {
	content, err := templatesFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("template %s not found: %w", name, err)
	}
	return string(content), nil
}

// Render executes the named template with data. Partials are parsed into the
// same set, so the template can refer to them with {{template "name" .}}.
func Render(name string, data interface{}, partials ...string) (string, error) {
	content, err := Get(name)
	if err != nil {
		return "", err
	}

	t, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	for _, partial := range partials {
		body, err := Get(partial)
		if err != nil {
			return "", err
		}
		if _, err := t.New(partial).Parse(body); err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", partial, err)
		}
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
