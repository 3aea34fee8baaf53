// Where: vmm/internal/infra/ui/ui.go
// What: High-level UI adapter for commands.
// Why: Give commands one output surface that degrades to plain text off a TTY.
package ui

import (
	"io"
	"os"

	"github.com/poruru-code/vmm-cli/internal/infra/interaction"
)

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by commands.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Success(msg string)
	Block(emoji, title string, rows []KeyValue)
}

// NewUI returns a UserInterface writing to out. Emoji are enabled only when
// out is a terminal and NO_EMOJI is unset.
func NewUI(out io.Writer) UserInterface {
	return consoleUI{console: NewWithEmoji(out, EmojiSupported(out))}
}

// EmojiSupported reports whether out looks like an interactive terminal.
func EmojiSupported(out io.Writer) bool {
	if os.Getenv("NO_EMOJI") != "" {
		return false
	}
	file, ok := out.(*os.File)
	return ok && interaction.IsTerminal(file)
}

type consoleUI struct {
	console *Console
}

func (u consoleUI) Info(msg string) {
	u.console.Info(msg)
}

func (u consoleUI) Warn(msg string) {
	u.console.Warn(msg)
}

func (u consoleUI) Error(msg string) {
	u.console.Error(msg)
}

func (u consoleUI) Success(msg string) {
	u.console.Success(msg)
}

func (u consoleUI) Block(emoji, title string, rows []KeyValue) {
	u.console.BlockStart(emoji, title)
	for _, kv := range rows {
		u.console.Item(kv.Key, kv.Value)
	}
	u.console.BlockEnd()
}
