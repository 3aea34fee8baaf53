// Where: vmm/internal/infra/secrets/env.go
// What: Environment-variable secret resolver.
// Why: Allow `env:NAME` references for local runs without Secret Manager.
package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/ports"
)

// EnvScheme prefixes references served by EnvResolver.
const EnvScheme = "env:"

// EnvResolver reads `env:NAME` references from the process environment.
type EnvResolver struct {
	LookupEnv func(string) (string, bool)
}

func (r EnvResolver) Resolve(_ context.Context, ref source.SecretReference) ([]byte, error) {
	name, ok := strings.CutPrefix(ref.String(), EnvScheme)
	if !ok || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("invalid env secret reference %q", ref)
	}
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	value, found := lookup(name)
	if !found || value == "" {
		return nil, fmt.Errorf("environment variable %s: %w", name, ports.ErrNotFound)
	}
	return []byte(value), nil
}
