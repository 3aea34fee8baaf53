// Where: vmm/internal/infra/secrets/google.go
// What: Google Secret Manager resolver.
// Why: Provide ports.SecretResolver backed by AccessSecretVersion.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/ports"
)

// ErrChecksumMismatch reports a payload whose CRC32C does not match the
// checksum returned by the server.
var ErrChecksumMismatch = errors.New("secret payload checksum mismatch")

var crc32c = crc32.MakeTable(crc32.Castagnoli)

type versionAccessor interface {
	AccessSecretVersion(
		ctx context.Context,
		req *secretmanagerpb.AccessSecretVersionRequest,
		opts ...gax.CallOption,
	) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// GoogleResolver resolves secret version names through Secret Manager.
type GoogleResolver struct {
	client versionAccessor
	closer func() error
}

// NewGoogleResolver dials Secret Manager with the given client options.
func NewGoogleResolver(ctx context.Context, opts ...option.ClientOption) (*GoogleResolver, error) {
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create secret manager client: %w", err)
	}
	return &GoogleResolver{client: client, closer: client.Close}, nil
}

func newGoogleResolverWithClient(client versionAccessor) *GoogleResolver {
	return &GoogleResolver{client: client}
}

// Resolve returns the payload of ref. NotFound and PermissionDenied map to
// ports.ErrNotFound.
func (r *GoogleResolver) Resolve(ctx context.Context, ref source.SecretReference) ([]byte, error) {
	if r == nil || r.client == nil {
		return nil, fmt.Errorf("secret manager client is nil")
	}
	resp, err := r.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: ref.String(),
	})
	if err != nil {
		switch status.Code(err) {
		case codes.NotFound, codes.PermissionDenied, codes.FailedPrecondition:
			return nil, fmt.Errorf("access secret version %s: %w: %v", ref, ports.ErrNotFound, err)
		default:
			return nil, fmt.Errorf("access secret version %s: %w", ref, err)
		}
	}

	payload := resp.GetPayload()
	if payload == nil {
		return nil, fmt.Errorf("access secret version %s: empty payload: %w", ref, ports.ErrNotFound)
	}
	if payload.DataCrc32C != nil {
		if int64(crc32.Checksum(payload.GetData(), crc32c)) != payload.GetDataCrc32C() {
			return nil, fmt.Errorf("access secret version %s: %w", ref, ErrChecksumMismatch)
		}
	}
	return payload.GetData(), nil
}

// Close releases the underlying client connection.
func (r *GoogleResolver) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer()
}
