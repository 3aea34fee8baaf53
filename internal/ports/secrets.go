// Where: vmm/internal/ports/secrets.go
// What: Secret store port definitions.
// Why: Allow the registrar to resolve credentials without knowing the backing store.
package ports

import (
	"context"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
)

// SecretResolver returns the plaintext payload of a secret reference.
// Implementations return an error wrapping ErrNotFound when the version is
// missing or inaccessible.
type SecretResolver interface {
	Resolve(ctx context.Context, ref source.SecretReference) ([]byte, error)
}

// SecretResolverFunc adapts a function to SecretResolver.
type SecretResolverFunc func(ctx context.Context, ref source.SecretReference) ([]byte, error)

func (f SecretResolverFunc) Resolve(ctx context.Context, ref source.SecretReference) ([]byte, error) {
	return f(ctx, ref)
}
