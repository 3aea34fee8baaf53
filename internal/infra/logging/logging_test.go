// Where: vmm/internal/infra/logging/logging_test.go
// What: Tests for logger construction.
// Why: Level precedence and output format must be predictable.
package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, want := range cases {
		got, ok := ParseLevel(input)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", input, got, ok)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level to report false")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Output: &buf})
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestNewEnvOverridesLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	var buf bytes.Buffer
	logger := New(Options{Level: "error", Output: &buf})
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected env level to win: %s", buf.String())
	}
}

func TestNewJSONWithModule(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	var buf bytes.Buffer
	logger := WithModule(New(Options{JSON: true, Output: &buf}), "register")
	logger.Info("hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if record["module"] != "register" || record["app"] != "vmm" || record["msg"] != "hello" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewWarnsOnInvalidLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	var buf bytes.Buffer
	New(Options{Level: "loud", Output: &buf})
	if !strings.Contains(buf.String(), "invalid log level") {
		t.Fatalf("expected warning, got %s", buf.String())
	}
}
