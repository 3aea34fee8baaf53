// Where: vmm/internal/usecase/register/registrar_test.go
// What: Tests for the create-or-fetch registration workflow.
// Why: Guard idempotency, secret handling and failure classification.
package register

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/ports"
)

const (
	testParent    = "projects/p/locations/us-central1"
	accessKeyRef  = source.SecretReference("projects/p/secrets/aws-access-key-id/versions/latest")
	secretKeyRef  = source.SecretReference("projects/p/secrets/aws-secret-access-key/versions/latest")
	testRequestID = "req-1"
)

type fakeSecrets struct {
	values map[source.SecretReference]string
	calls  []source.SecretReference
}

func (f *fakeSecrets) Resolve(_ context.Context, ref source.SecretReference) ([]byte, error) {
	f.calls = append(f.calls, ref)
	value, ok := f.values[ref]
	if !ok {
		return nil, fmt.Errorf("access %s: %w", ref, ports.ErrNotFound)
	}
	return []byte(value), nil
}

type fakeOperation struct {
	result source.MigrationSource
	err    error
	block  bool
}

func (o *fakeOperation) Name() string {
	return "operations/op-1"
}

func (o *fakeOperation) Wait(ctx context.Context) (source.MigrationSource, error) {
	if o.block {
		<-ctx.Done()
		return source.MigrationSource{}, ctx.Err()
	}
	return o.result, o.err
}

type fakeMigration struct {
	sources     map[string]source.MigrationSource
	created     []source.Descriptor
	gets        []string
	createErr   error
	waitErr     error
	getErr      error
	blockWait   bool
	createCalls int
}

func newFakeMigration() *fakeMigration {
	return &fakeMigration{sources: map[string]source.MigrationSource{}}
}

func (f *fakeMigration) CreateSource(_ context.Context, desc source.Descriptor) (ports.Operation, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	path := desc.Path()
	if _, ok := f.sources[path]; ok {
		return nil, fmt.Errorf("create %s: %w", path, ports.ErrAlreadyExists)
	}
	f.created = append(f.created, desc)
	created := source.MigrationSource{
		Name:        path,
		Description: desc.Description,
		AWSRegion:   desc.AWS.Region,
		State:       "PENDING",
	}
	if f.waitErr == nil && !f.blockWait {
		f.sources[path] = created
	}
	return &fakeOperation{result: created, err: f.waitErr, block: f.blockWait}, nil
}

func (f *fakeMigration) GetSource(_ context.Context, path string) (source.MigrationSource, error) {
	f.gets = append(f.gets, path)
	if f.getErr != nil {
		return source.MigrationSource{}, f.getErr
	}
	src, ok := f.sources[path]
	if !ok {
		return source.MigrationSource{}, fmt.Errorf("get %s: %w", path, ports.ErrNotFound)
	}
	return src, nil
}

type fakeVerifier struct {
	err   error
	calls int
}

func (f *fakeVerifier) Verify(_ context.Context, _ string, _ source.Credentials) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "123456789012", nil
}

func newSecrets() *fakeSecrets {
	return &fakeSecrets{values: map[source.SecretReference]string{
		accessKeyRef: "AKID123",
		secretKeyRef: "SECRET456\n",
	}}
}

func newRequest(id string) Request {
	return Request{
		Parent:             testParent,
		SourceID:           id,
		Region:             "ca-central-1",
		AccessKeyIDRef:     accessKeyRef,
		SecretAccessKeyRef: secretKeyRef,
	}
}

func newTestRegistrar(secrets ports.SecretResolver, migration ports.MigrationService, opts Options) (*Registrar, *bytes.Buffer) {
	var logs bytes.Buffer
	opts.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts.NewRequestID = func() string { return testRequestID }
	return New(secrets, migration, opts), &logs
}

func TestRegisterCreatesSource(t *testing.T) {
	migration := newFakeMigration()
	registrar, _ := newTestRegistrar(newSecrets(), migration, Options{})

	got, err := registrar.Register(context.Background(), newRequest("src1"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got.Name != "projects/p/locations/us-central1/sources/src1" {
		t.Fatalf("unexpected source name: %s", got.Name)
	}
	if len(migration.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(migration.created))
	}

	desc := migration.created[0]
	if desc.AWS.Region != "ca-central-1" {
		t.Fatalf("unexpected region: %s", desc.AWS.Region)
	}
	if desc.Description != "AWS source for ca-central-1" {
		t.Fatalf("unexpected description: %q", desc.Description)
	}
	if desc.AWS.Credentials.AccessKeyID != "AKID123" || desc.AWS.Credentials.SecretAccessKey != "SECRET456" {
		t.Fatalf("unexpected credentials: %#v", desc.AWS.Credentials)
	}
	if desc.RequestID != testRequestID {
		t.Fatalf("unexpected request id: %s", desc.RequestID)
	}
	if len(migration.gets) != 0 {
		t.Fatalf("expected no get calls, got %v", migration.gets)
	}
}

func TestRegisterResolvesSecretsInOrder(t *testing.T) {
	secrets := newSecrets()
	registrar, _ := newTestRegistrar(secrets, newFakeMigration(), Options{})

	if _, err := registrar.Register(context.Background(), newRequest("src1")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(secrets.calls) != 2 || secrets.calls[0] != accessKeyRef || secrets.calls[1] != secretKeyRef {
		t.Fatalf("unexpected resolve calls: %v", secrets.calls)
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	migration := newFakeMigration()
	registrar, _ := newTestRegistrar(newSecrets(), migration, Options{})

	first, err := registrar.Register(context.Background(), newRequest("src1"))
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	second, err := registrar.Register(context.Background(), newRequest("src1"))
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if first.Name != second.Name {
		t.Fatalf("expected same source, got %s and %s", first.Name, second.Name)
	}
	if len(migration.gets) != 1 || migration.gets[0] != first.Name {
		t.Fatalf("expected exactly one get for %s, got %v", first.Name, migration.gets)
	}
}

func TestRegisterAlreadyExistsFetchesExisting(t *testing.T) {
	migration := newFakeMigration()
	existing := source.MigrationSource{Name: source.SourcePath(testParent, "src1"), Description: "pre-existing"}
	migration.sources[existing.Name] = existing
	registrar, logs := newTestRegistrar(newSecrets(), migration, Options{})

	got, err := registrar.Register(context.Background(), newRequest("src1"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got.Description != "pre-existing" {
		t.Fatalf("expected existing source, got %#v", got)
	}
	if len(migration.gets) != 1 || migration.gets[0] != "projects/p/locations/us-central1/sources/src1" {
		t.Fatalf("unexpected get calls: %v", migration.gets)
	}
	if !strings.Contains(logs.String(), string(StateFetchingExisting)) {
		t.Fatalf("expected already-exists log line, got:\n%s", logs.String())
	}
}

func TestRegisterAlreadyExistsFromOperation(t *testing.T) {
	migration := newFakeMigration()
	migration.waitErr = fmt.Errorf("operation failed: %w", ports.ErrAlreadyExists)
	path := source.SourcePath(testParent, "src1")
	// A concurrent creator won the race; the fetch returns its resource.
	getter := &getOverride{fakeMigration: migration, result: source.MigrationSource{Name: path, Description: "winner"}}
	registrar, _ := newTestRegistrar(newSecrets(), getter, Options{})

	got, err := registrar.Register(context.Background(), newRequest("src1"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if got.Description != "winner" {
		t.Fatalf("unexpected source: %#v", got)
	}
	if len(getter.gets) != 1 || getter.gets[0] != path {
		t.Fatalf("unexpected get calls: %v", getter.gets)
	}
}

type getOverride struct {
	*fakeMigration
	result source.MigrationSource
	gets   []string
}

func (g *getOverride) GetSource(_ context.Context, path string) (source.MigrationSource, error) {
	g.gets = append(g.gets, path)
	return g.result, nil
}

func TestRegisterSecretNotFoundSkipsMigrationService(t *testing.T) {
	for _, missing := range []source.SecretReference{accessKeyRef, secretKeyRef} {
		t.Run(string(missing), func(t *testing.T) {
			secrets := newSecrets()
			delete(secrets.values, missing)
			migration := newFakeMigration()
			registrar, _ := newTestRegistrar(secrets, migration, Options{})

			_, err := registrar.Register(context.Background(), newRequest("src1"))
			if !IsSecretNotFound(err) {
				t.Fatalf("expected secret not found, got %v", err)
			}
			var snf *SecretNotFoundError
			if !errors.As(err, &snf) || snf.Ref != missing {
				t.Fatalf("expected error for %s, got %v", missing, err)
			}
			if !errors.Is(err, ports.ErrNotFound) {
				t.Fatalf("expected wrapped ErrNotFound, got %v", err)
			}
			if migration.createCalls != 0 || len(migration.gets) != 0 {
				t.Fatalf("expected no migration calls, got create=%d get=%d", migration.createCalls, len(migration.gets))
			}
		})
	}
}

func TestRegisterEmptySecret(t *testing.T) {
	secrets := newSecrets()
	secrets.values[secretKeyRef] = "\n"
	migration := newFakeMigration()
	registrar, _ := newTestRegistrar(secrets, migration, Options{})

	_, err := registrar.Register(context.Background(), newRequest("src1"))
	if !IsSecretNotFound(err) || !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected empty secret error, got %v", err)
	}
	if migration.createCalls != 0 {
		t.Fatalf("expected no create call")
	}
}

func TestRegisterCreateFailure(t *testing.T) {
	migration := newFakeMigration()
	migration.createErr = errors.New("permission denied")
	registrar, logs := newTestRegistrar(newSecrets(), migration, Options{})

	_, err := registrar.Register(context.Background(), newRequest("src1"))
	var failed *RegistrationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected registration failure, got %v", err)
	}
	if failed.Phase != StateSubmitting || failed.SourceID != "src1" || failed.Parent != testParent {
		t.Fatalf("unexpected failure context: %#v", failed)
	}
	if len(migration.gets) != 0 {
		t.Fatalf("expected no fetch, got %v", migration.gets)
	}
	if !strings.Contains(logs.String(), "permission denied") {
		t.Fatalf("expected failure to be logged, got:\n%s", logs.String())
	}
}

func TestRegisterOperationFailureDoesNotFetch(t *testing.T) {
	migration := newFakeMigration()
	migration.waitErr = errors.New("quota exceeded")
	registrar, _ := newTestRegistrar(newSecrets(), migration, Options{})

	_, err := registrar.Register(context.Background(), newRequest("src1"))
	var failed *RegistrationFailedError
	if !errors.As(err, &failed) || failed.Phase != StateAwaitingOperation {
		t.Fatalf("expected awaiting-operation failure, got %v", err)
	}
	if IsSecretNotFound(err) {
		t.Fatalf("operation failure misclassified as secret error")
	}
	if len(migration.gets) != 0 {
		t.Fatalf("expected no fetch, got %v", migration.gets)
	}
}

func TestRegisterFetchExistingFailure(t *testing.T) {
	migration := newFakeMigration()
	migration.createErr = fmt.Errorf("create: %w", ports.ErrAlreadyExists)
	migration.getErr = errors.New("backend unavailable")
	registrar, _ := newTestRegistrar(newSecrets(), migration, Options{})

	_, err := registrar.Register(context.Background(), newRequest("src1"))
	var failed *RegistrationFailedError
	if !errors.As(err, &failed) || failed.Phase != StateFetchingExisting {
		t.Fatalf("expected fetching-existing failure, got %v", err)
	}
	if len(migration.gets) != 1 {
		t.Fatalf("expected one get call, got %v", migration.gets)
	}
}

func TestRegisterWaitTimeout(t *testing.T) {
	migration := newFakeMigration()
	migration.blockWait = true
	registrar, _ := newTestRegistrar(newSecrets(), migration, Options{WaitTimeout: 10 * time.Millisecond})

	_, err := registrar.Register(context.Background(), newRequest("src1"))
	if !IsRegistrationFailed(err) {
		t.Fatalf("expected registration failure, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestRegisterVerifierFailurePreventsSubmission(t *testing.T) {
	migration := newFakeMigration()
	verifier := &fakeVerifier{err: errors.New("invalid client token")}
	registrar, _ := newTestRegistrar(newSecrets(), migration, Options{Verifier: verifier})

	_, err := registrar.Register(context.Background(), newRequest("src1"))
	var failed *RegistrationFailedError
	if !errors.As(err, &failed) || failed.Phase != StateVerifying {
		t.Fatalf("expected verification failure, got %v", err)
	}
	if migration.createCalls != 0 {
		t.Fatalf("expected no create call")
	}
}

func TestRegisterVerifierSuccess(t *testing.T) {
	verifier := &fakeVerifier{}
	registrar, _ := newTestRegistrar(newSecrets(), newFakeMigration(), Options{Verifier: verifier})

	if _, err := registrar.Register(context.Background(), newRequest("src1")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if verifier.calls != 1 {
		t.Fatalf("expected one verify call, got %d", verifier.calls)
	}
}

func TestRegisterDoesNotLogSecrets(t *testing.T) {
	verifier := &fakeVerifier{}
	registrar, logs := newTestRegistrar(newSecrets(), newFakeMigration(), Options{Verifier: verifier})

	if _, err := registrar.Register(context.Background(), newRequest("src1")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if strings.Contains(logs.String(), "SECRET456") || strings.Contains(logs.String(), "AKID123") {
		t.Fatalf("credentials leaked into logs:\n%s", logs.String())
	}
}

func TestRegisterCustomDescription(t *testing.T) {
	migration := newFakeMigration()
	registrar, _ := newTestRegistrar(newSecrets(), migration, Options{DescriptionTemplate: "{{ .SourceID }} ({{ .Region }})"})

	if _, err := registrar.Register(context.Background(), newRequest("src1")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if migration.created[0].Description != "src1 (ca-central-1)" {
		t.Fatalf("unexpected description: %q", migration.created[0].Description)
	}
}


func TestRegisterTrimsOnlyTrailingLineEndings(t *testing.T) {
	secrets := &fakeSecrets{values: map[source.SecretReference]string{
		accessKeyRef: " AKID123 \r\n",
		secretKeyRef: "SECRET\n456\n\n",
	}}
	migration := newFakeMigration()
	registrar, _ := newTestRegistrar(secrets, migration, Options{})

	if _, err := registrar.Register(context.Background(), newRequest("src1")); err != nil {
		t.Fatalf("register: %v", err)
	}
	creds := migration.created[0].AWS.Credentials
	if creds.AccessKeyID != " AKID123 " {
		t.Fatalf("expected only the line ending trimmed, got %q", creds.AccessKeyID)
	}
	if creds.SecretAccessKey != "SECRET\n456" {
		t.Fatalf("expected inner newline kept, got %q", creds.SecretAccessKey)
	}
}
