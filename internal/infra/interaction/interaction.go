// Where: vmm/internal/infra/interaction/interaction.go
// What: Interactive primitives for CLI prompts and TTY detection.
// Why: Fill missing registration inputs interactively when a human is at the keyboard.
package interaction

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when a prompt is required but stdin is not a terminal.
var ErrNotInteractive = errors.New("input required but terminal is not interactive")

// Prompter defines the interface for interactive user input and selection.
type Prompter interface {
	Input(title string, suggestions []string) (string, error)
	Select(title string, options []string) (string, error)
}

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PromptYesNoWithIO prints a confirmation prompt to out and reads the answer from in.
func PromptYesNoWithIO(in io.Reader, out io.Writer, message string) (bool, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	reader := bufio.NewReader(in)
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", message)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	trimmed := strings.TrimSpace(strings.ToLower(line))
	return trimmed == "y" || trimmed == "yes", nil
}

// Required returns value when set, otherwise asks prompter for it. A nil
// prompter means the session is not interactive.
func Required(prompter Prompter, value, title string, suggestions []string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	if prompter == nil {
		return "", fmt.Errorf("%w: %s", ErrNotInteractive, title)
	}
	answer, err := prompter.Input(title, suggestions)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%s is required", title)
	}
	return answer, nil
}

// RequiredChoice is Required with a fixed option list shown as a selector.
func RequiredChoice(prompter Prompter, value, title string, options []string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	if prompter == nil {
		return "", fmt.Errorf("%w: %s", ErrNotInteractive, title)
	}
	if len(options) == 0 {
		return Required(prompter, value, title, nil)
	}
	answer, err := prompter.Select(title, options)
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return "", fmt.Errorf("%s is required", title)
	}
	return answer, nil
}
