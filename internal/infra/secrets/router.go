// Where: vmm/internal/infra/secrets/router.go
// What: Scheme-based secret resolver routing.
// Why: Serve `env:` references locally and everything else from Secret Manager.
package secrets

import (
	"context"
	"fmt"
	"strings"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/ports"
)

// Router dispatches references to Env or Default by prefix.
type Router struct {
	Env     ports.SecretResolver
	Default ports.SecretResolver
}

func (r Router) Resolve(ctx context.Context, ref source.SecretReference) ([]byte, error) {
	if strings.HasPrefix(ref.String(), EnvScheme) {
		if r.Env == nil {
			return nil, fmt.Errorf("no resolver configured for %q", ref)
		}
		return r.Env.Resolve(ctx, ref)
	}
	if r.Default == nil {
		return nil, fmt.Errorf("no resolver configured for %q", ref)
	}
	return r.Default.Resolve(ctx, ref)
}
