// Where: vmm/internal/infra/output/output.go
// What: Machine-readable rendering of migration sources.
// Why: Let scripts consume command results as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
)

// Format selects how a result is printed.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// Write encodes src to out as YAML or JSON. FormatText is handled by the UI.
func Write(out io.Writer, format Format, src source.MigrationSource) error {
	switch format {
	case FormatJSON:
		payload, err := json.MarshalIndent(src, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(payload))
		return err
	case FormatYAML:
		payload, err := yaml.Marshal(src)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = out.Write(payload)
		return err
	default:
		return fmt.Errorf("format %s is not machine-readable", format)
	}
}
