// Where: vmm/internal/app/di.go
// What: CLI dependency wiring.
// Why: Keep the runtime dependencies scoped for reuse by main and tests.
package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/poruru-code/vmm-cli/internal/command"
	"github.com/poruru-code/vmm-cli/internal/infra/config"
	"github.com/poruru-code/vmm-cli/internal/infra/interaction"
)

var stdinIsTerminal = func() bool { return interaction.IsTerminal(os.Stdin) }

// BuildDependencies constructs CLI dependencies. It returns the dependencies
// bundle, a closer for cleanup, and any initialization error.
func BuildDependencies(_ []string) (command.Dependencies, io.Closer, error) {
	deps := command.Dependencies{
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		ConfigPath: config.Path,
		Clients:    CloudClients{},
		Context: func() (context.Context, context.CancelFunc) {
			return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		},
	}
	if stdinIsTerminal() {
		deps.In = os.Stdin
		deps.Prompter = interaction.HuhPrompter{}
	}
	return deps, nil, nil
}
