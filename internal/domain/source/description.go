// Where: vmm/internal/domain/source/description.go
// What: Source description rendering.
// Why: Allow a configurable description while defaulting to "AWS source for {region}".
package source

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultDescriptionTemplate renders "AWS source for {region}".
const DefaultDescriptionTemplate = "AWS source for {{ .Region }}"

// DescriptionData is the template context for source descriptions.
type DescriptionData struct {
	Region   string
	SourceID string
	Parent   string
}

// RenderDescription executes tmpl against data. An empty template uses the default.
func RenderDescription(tmpl string, data DescriptionData) (string, error) {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultDescriptionTemplate
	}
	parsed, err := template.New("description").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse description template: %w", err)
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render description template: %w", err)
	}
	return buf.String(), nil
}
