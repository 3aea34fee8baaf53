// Where: vmm/internal/ports/migration.go
// What: Migration service port definitions.
// Why: Decouple the registration workflow from the VM Migration SDK.
package ports

import (
	"context"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
)

// MigrationService creates and reads migration sources.
type MigrationService interface {
	// CreateSource submits a create request and returns the long-running
	// operation handle. It returns an error wrapping ErrAlreadyExists when the
	// source id collides.
	CreateSource(ctx context.Context, desc source.Descriptor) (Operation, error)
	// GetSource reads the source at path; ErrNotFound when absent.
	GetSource(ctx context.Context, path string) (source.MigrationSource, error)
}

// Operation is a handle to an asynchronous create request.
type Operation interface {
	// Name is the server-side operation name, if known.
	Name() string
	// Wait blocks until the operation reaches a terminal state. Polling cadence
	// is owned by the client library.
	Wait(ctx context.Context) (source.MigrationSource, error)
}

// CredentialVerifier checks AWS credentials against the provider before
// they are handed to the migration service.
type CredentialVerifier interface {
	Verify(ctx context.Context, region string, creds source.Credentials) (account string, err error)
}
