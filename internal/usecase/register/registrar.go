// Where: vmm/internal/usecase/register/registrar.go
// What: Idempotent create-or-fetch registration of AWS migration sources.
// Why: Re-running a registration with the same source id must converge on one resource.
package register

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/ports"
)

// Request names the source to register and where its credentials live.
type Request struct {
	Parent             string
	SourceID           string
	Region             string
	AccessKeyIDRef     source.SecretReference
	SecretAccessKeyRef source.SecretReference
	Labels             map[string]string
}

// Options tune a Registrar. The zero value is usable.
type Options struct {
	// DescriptionTemplate overrides source.DefaultDescriptionTemplate.
	DescriptionTemplate string
	// WaitTimeout bounds the operation wait. Zero leaves it unbounded.
	WaitTimeout time.Duration
	// Verifier, when set, checks the resolved credentials before submission.
	Verifier ports.CredentialVerifier
	Logger   *slog.Logger
	// NewRequestID generates the create request id. Defaults to uuid.NewString.
	NewRequestID func() string
}

// Registrar registers migration sources. It holds no per-call state and is
// safe for concurrent use.
type Registrar struct {
	secrets   ports.SecretResolver
	migration ports.MigrationService
	opts      Options
	logger    *slog.Logger
}

// New returns a Registrar backed by the given collaborators.
func New(secrets ports.SecretResolver, migration ports.MigrationService, opts Options) *Registrar {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.NewRequestID == nil {
		opts.NewRequestID = uuid.NewString
	}
	return &Registrar{
		secrets:   secrets,
		migration: migration,
		opts:      opts,
		logger:    logger.With("component", "source_registrar"),
	}
}

// Register creates the source described by req, or returns the existing one
// when a source with the same id is already registered under req.Parent.
// Errors are *SecretNotFoundError or *RegistrationFailedError.
func (r *Registrar) Register(ctx context.Context, req Request) (source.MigrationSource, error) {
	log := r.logger.With(
		"parent", req.Parent,
		"source_id", req.SourceID,
		"aws_region", req.Region,
	)
	log.Info("registering migration source", "phase", StateIdle)

	log.Debug("resolving credentials", "phase", StateResolvingSecrets)
	creds, err := r.resolveCredentials(ctx, req)
	if err != nil {
		log.Error("could not resolve secret; make sure it exists and is accessible",
			"phase", StateFailed, "error", err)
		return source.MigrationSource{}, err
	}

	desc, err := r.buildDescriptor(req, creds)
	if err != nil {
		return source.MigrationSource{}, r.fail(log, req, StateSubmitting, err)
	}

	if r.opts.Verifier != nil {
		log.Debug("verifying AWS credentials", "phase", StateVerifying, "credentials", creds)
		account, err := r.opts.Verifier.Verify(ctx, req.Region, creds)
		if err != nil {
			return source.MigrationSource{}, r.fail(log, req, StateVerifying, err)
		}
		log.Info("AWS credentials verified", "phase", StateVerifying, "aws_account", account)
	}

	log.Debug("submitting create request", "phase", StateSubmitting, "request_id", desc.RequestID)
	op, err := r.migration.CreateSource(ctx, desc)
	if err != nil {
		if errors.Is(err, ports.ErrAlreadyExists) {
			return r.fetchExisting(ctx, log, req)
		}
		return source.MigrationSource{}, r.fail(log, req, StateSubmitting, err)
	}

	log.Info("waiting for operation to complete", "phase", StateAwaitingOperation, "operation", op.Name())
	result, err := r.await(ctx, op)
	if err != nil {
		if errors.Is(err, ports.ErrAlreadyExists) {
			return r.fetchExisting(ctx, log, req)
		}
		return source.MigrationSource{}, r.fail(log, req, StateAwaitingOperation, err)
	}

	log.Info("migration source created", "phase", StateSucceeded, "name", result.Name)
	return result, nil
}

func (r *Registrar) resolveCredentials(ctx context.Context, req Request) (source.Credentials, error) {
	accessKeyID, err := r.resolve(ctx, req.AccessKeyIDRef)
	if err != nil {
		return source.Credentials{}, err
	}
	secretAccessKey, err := r.resolve(ctx, req.SecretAccessKeyRef)
	if err != nil {
		return source.Credentials{}, err
	}
	return source.Credentials{AccessKeyID: accessKeyID, SecretAccessKey: secretAccessKey}, nil
}

func (r *Registrar) resolve(ctx context.Context, ref source.SecretReference) (string, error) {
	payload, err := r.secrets.Resolve(ctx, ref)
	if err != nil {
		return "", &SecretNotFoundError{Ref: ref, Err: err}
	}
	// Trailing CR/LF is dropped; all other bytes are kept.
	value := strings.TrimRight(string(payload), "\r\n")
	if value == "" {
		return "", &SecretNotFoundError{Ref: ref, Err: ErrEmptySecret}
	}
	return value, nil
}

func (r *Registrar) buildDescriptor(req Request, creds source.Credentials) (source.Descriptor, error) {
	description, err := source.RenderDescription(r.opts.DescriptionTemplate, source.DescriptionData{
		Region:   req.Region,
		SourceID: req.SourceID,
		Parent:   req.Parent,
	})
	if err != nil {
		return source.Descriptor{}, err
	}
	return source.Descriptor{
		Parent:   req.Parent,
		SourceID: req.SourceID,
		AWS: source.AWSDetails{
			Region:      req.Region,
			Credentials: creds,
		},
		Description: description,
		Labels:      req.Labels,
		RequestID:   r.opts.NewRequestID(),
	}, nil
}

func (r *Registrar) await(ctx context.Context, op ports.Operation) (source.MigrationSource, error) {
	if r.opts.WaitTimeout <= 0 {
		return op.Wait(ctx)
	}
	waitCtx, cancel := context.WithTimeout(ctx, r.opts.WaitTimeout)
	defer cancel()
	result, err := op.Wait(waitCtx)
	if err != nil && errors.Is(waitCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return source.MigrationSource{}, fmt.Errorf("operation %s did not complete within %s: %w", op.Name(), r.opts.WaitTimeout, err)
	}
	return result, err
}

func (r *Registrar) fetchExisting(ctx context.Context, log *slog.Logger, req Request) (source.MigrationSource, error) {
	path := source.SourcePath(req.Parent, req.SourceID)
	log.Info("migration source already exists; fetching it", "phase", StateFetchingExisting, "name", path)
	existing, err := r.migration.GetSource(ctx, path)
	if err != nil {
		return source.MigrationSource{}, r.fail(log, req, StateFetchingExisting, err)
	}
	log.Info("using existing migration source", "phase", StateSucceeded, "name", existing.Name)
	return existing, nil
}

func (r *Registrar) fail(log *slog.Logger, req Request, phase State, err error) error {
	log.Error("migration source registration failed", "phase", StateFailed, "failed_phase", phase, "error", err)
	return &RegistrationFailedError{
		Phase:    phase,
		Parent:   req.Parent,
		SourceID: req.SourceID,
		Err:      err,
	}
}
