// Where: vmm/internal/app/clients.go
// What: Google Cloud and AWS client construction from config.
// Why: Build remote collaborators lazily so env-only runs never dial Secret Manager.
package app

import (
	"context"
	"io"
	"strings"
	"sync"

	"google.golang.org/api/option"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/infra/awscheck"
	"github.com/poruru-code/vmm-cli/internal/infra/config"
	"github.com/poruru-code/vmm-cli/internal/infra/secrets"
	"github.com/poruru-code/vmm-cli/internal/infra/vmmigration"
	"github.com/poruru-code/vmm-cli/internal/ports"
)

type googleSecretClient interface {
	ports.SecretResolver
	io.Closer
}

type migrationClient interface {
	ports.MigrationService
	io.Closer
}

var (
	newGoogleResolver = func(ctx context.Context, opts ...option.ClientOption) (googleSecretClient, error) {
		return secrets.NewGoogleResolver(ctx, opts...)
	}
	newMigrationService = func(ctx context.Context, opts ...option.ClientOption) (migrationClient, error) {
		return vmmigration.NewService(ctx, opts...)
	}
)

// CloudClients implements command.ClientFactory against the real APIs.
type CloudClients struct{}

func (CloudClients) Secrets(ctx context.Context, cfg config.Config) (ports.SecretResolver, io.Closer, error) {
	google := &lazyResolver{
		ctx:  ctx,
		opts: clientOptions(cfg, cfg.Endpoints.SecretManager),
	}
	return secrets.Router{Env: secrets.EnvResolver{}, Default: google}, google, nil
}

func (CloudClients) Migration(ctx context.Context, cfg config.Config) (ports.MigrationService, io.Closer, error) {
	service, err := newMigrationService(ctx, clientOptions(cfg, cfg.Endpoints.VMMigration)...)
	if err != nil {
		return nil, nil, err
	}
	return service, service, nil
}

func (CloudClients) Verifier(cfg config.Config) ports.CredentialVerifier {
	return awscheck.NewVerifier(cfg.Endpoints.STS)
}

func clientOptions(cfg config.Config, endpoint string) []option.ClientOption {
	var opts []option.ClientOption
	if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	if file := strings.TrimSpace(cfg.CredentialsFile); file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}
	if quota := strings.TrimSpace(cfg.QuotaProject); quota != "" {
		opts = append(opts, option.WithQuotaProject(quota))
	}
	return opts
}

// lazyResolver opens the Secret Manager client on first use.
type lazyResolver struct {
	ctx  context.Context
	opts []option.ClientOption

	once   sync.Once
	client googleSecretClient
	err    error
}

func (r *lazyResolver) Resolve(ctx context.Context, ref source.SecretReference) ([]byte, error) {
	r.once.Do(func() {
		r.client, r.err = newGoogleResolver(r.ctx, r.opts...)
	})
	if r.err != nil {
		return nil, r.err
	}
	return r.client.Resolve(ctx, ref)
}

func (r *lazyResolver) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
