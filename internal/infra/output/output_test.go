// Where: vmm/internal/infra/output/output_test.go
// What: Tests for YAML/JSON rendering.
// Why: Field names are part of the scripting contract.
package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatText, "TEXT": FormatText, "yml": FormatYAML, "yaml": FormatYAML, "json": FormatJSON}
	for input, want := range cases {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func testSource() source.MigrationSource {
	return source.MigrationSource{
		Name:        "projects/p/locations/us-central1/sources/src1",
		Description: "AWS source for ca-central-1",
		AWSRegion:   "ca-central-1",
		State:       "ACTIVE",
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, testSource()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["name"] != "projects/p/locations/us-central1/sources/src1" || decoded["awsRegion"] != "ca-central-1" {
		t.Fatalf("unexpected json: %s", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, testSource()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "name: projects/p/locations/us-central1/sources/src1\n") || !strings.Contains(out, "state: ACTIVE\n") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}
}

func TestWriteTextIsRejected(t *testing.T) {
	if err := Write(&bytes.Buffer{}, FormatText, testSource()); err == nil {
		t.Fatalf("expected error for text format")
	}
}
