// Where: vmm/internal/infra/logging/logging.go
// What: slog setup for the CLI.
// Why: Emit structured phase logs on stderr while stdout carries command output.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/poruru-code/vmm-cli/internal/meta"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = meta.EnvPrefix + "_LOG_LEVEL"

// ParseLevel maps a level name onto slog.Level. Unknown names report false
// and fall back to info.
func ParseLevel(value string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Options configures New.
type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// New builds a logger. VMM_LOG_LEVEL wins over opts.Level.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	levelName := opts.Level
	if env := os.Getenv(EnvLogLevel); env != "" {
		levelName = env
	}
	level, ok := ParseLevel(levelName)

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	logger := slog.New(handler).With("app", meta.AppName)
	if !ok {
		logger.Warn("invalid log level, using info", "value", levelName)
	}
	return logger
}

// WithModule scopes logger to a module name.
func WithModule(logger *slog.Logger, module string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("module", module)
}
