// Where: vmm/internal/command/fakes_test.go
// What: Test doubles for command handlers.
// Why: Exercise command wiring without Google Cloud or AWS access.
package command

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/infra/config"
	"github.com/poruru-code/vmm-cli/internal/ports"
)

type fakeCloser struct{ closed *int }

func (c fakeCloser) Close() error {
	*c.closed++
	return nil
}

type fakeSecrets struct {
	values map[string]string
	calls  []string
}

func (f *fakeSecrets) Resolve(_ context.Context, ref source.SecretReference) ([]byte, error) {
	f.calls = append(f.calls, ref.String())
	value, ok := f.values[ref.String()]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return []byte(value), nil
}

type fakeOperation struct {
	result source.MigrationSource
	err    error
}

func (o fakeOperation) Name() string { return "operations/op-1" }

func (o fakeOperation) Wait(context.Context) (source.MigrationSource, error) {
	return o.result, o.err
}

type fakeMigration struct {
	existing    map[string]source.MigrationSource
	descriptors []source.Descriptor
	gets        []string
}

func (f *fakeMigration) CreateSource(_ context.Context, desc source.Descriptor) (ports.Operation, error) {
	f.descriptors = append(f.descriptors, desc)
	if _, ok := f.existing[desc.Path()]; ok {
		return nil, ports.ErrAlreadyExists
	}
	created := source.MigrationSource{
		Name:        desc.Path(),
		Description: desc.Description,
		AWSRegion:   desc.AWS.Region,
		State:       "ACTIVE",
		Labels:      desc.Labels,
	}
	return fakeOperation{result: created}, nil
}

func (f *fakeMigration) GetSource(_ context.Context, path string) (source.MigrationSource, error) {
	f.gets = append(f.gets, path)
	found, ok := f.existing[path]
	if !ok {
		return source.MigrationSource{}, ports.ErrNotFound
	}
	return found, nil
}

type fakeVerifier struct {
	calls int
	err   error
}

func (v *fakeVerifier) Verify(context.Context, string, source.Credentials) (string, error) {
	v.calls++
	return "123456789012", v.err
}

type fakeClients struct {
	secrets   *fakeSecrets
	migration *fakeMigration
	verifier  *fakeVerifier
	closed    int
	lastCfg   config.Config
}

func (f *fakeClients) Secrets(_ context.Context, cfg config.Config) (ports.SecretResolver, io.Closer, error) {
	f.lastCfg = cfg
	return f.secrets, fakeCloser{closed: &f.closed}, nil
}

func (f *fakeClients) Migration(_ context.Context, cfg config.Config) (ports.MigrationService, io.Closer, error) {
	f.lastCfg = cfg
	return f.migration, fakeCloser{closed: &f.closed}, nil
}

func (f *fakeClients) Verifier(config.Config) ports.CredentialVerifier {
	return f.verifier
}

func newFakeClients() *fakeClients {
	return &fakeClients{
		secrets: &fakeSecrets{values: map[string]string{
			"projects/demo-project/secrets/aws-access-key-id/versions/latest":     "AKIAEXAMPLE1234",
			"projects/demo-project/secrets/aws-secret-access-key/versions/latest": "wJalrXUtnFEMI/K7MDENG\n",
		}},
		migration: &fakeMigration{existing: map[string]source.MigrationSource{}},
		verifier:  &fakeVerifier{},
	}
}

type fakePrompter struct {
	answers map[string]string
	asked   []string
}

func (p *fakePrompter) Input(title string, _ []string) (string, error) {
	p.asked = append(p.asked, title)
	return p.answers[title], nil
}

func (p *fakePrompter) Select(title string, options []string) (string, error) {
	p.asked = append(p.asked, title)
	if len(options) == 0 {
		return "", nil
	}
	if answer, ok := p.answers[title]; ok {
		for _, option := range options {
			if option == answer {
				return answer, nil
			}
		}
	}
	return options[0], nil
}

// testDeps returns Dependencies pointing at a config path inside a temp dir.
func testDeps(t *testing.T, out, logs io.Writer, clients ClientFactory) (Dependencies, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	return Dependencies{
		Out:        out,
		ErrOut:     logs,
		ConfigPath: func(string) (string, error) { return path, nil },
		Clients:    clients,
		Context: func() (context.Context, context.CancelFunc) {
			return context.WithCancel(context.Background())
		},
		NewLogger: func(_ config.Config, _ bool, w io.Writer) *slog.Logger {
			return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
		},
	}, path
}
