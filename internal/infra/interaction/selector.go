// Where: vmm/internal/infra/interaction/selector.go
// What: Interactive input/selection using the huh library.
// Why: Provide keyboard-based prompts for missing flags.
package interaction

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

var runInputPrompt = func(title string, suggestions []string, input *string) error {
	field := huh.NewInput().
		Title(title).
		Suggestions(suggestions).
		Value(input)
	if len(suggestions) > 0 {
		field.Placeholder(suggestions[0])
	}
	return field.Run()
}

var runSelectPrompt = func(title string, options []huh.Option[string], selected *string) error {
	return huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(selected).
		Run()
}

// HuhPrompter implements Prompter using the huh TUI library.
type HuhPrompter struct{}

func (HuhPrompter) Input(title string, suggestions []string) (string, error) {
	var input string
	if err := runInputPrompt(title, suggestions, &input); err != nil {
		return "", fmt.Errorf("prompt input: %w", err)
	}
	return input, nil
}

func (HuhPrompter) Select(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("prompt select: no options for %s", title)
	}
	huhOptions := huh.NewOptions(options...)
	var selected string
	if err := runSelectPrompt(title, huhOptions, &selected); err != nil {
		return "", fmt.Errorf("prompt select: %w", err)
	}
	return selected, nil
}
