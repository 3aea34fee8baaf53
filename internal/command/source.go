// Where: vmm/internal/command/source.go
// What: source register/get command handlers.
// Why: Adapt CLI flags and config into registrar requests and print the result.
package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/infra/config"
	"github.com/poruru-code/vmm-cli/internal/infra/interaction"
	"github.com/poruru-code/vmm-cli/internal/infra/logging"
	"github.com/poruru-code/vmm-cli/internal/ports"
	"github.com/poruru-code/vmm-cli/internal/usecase/register"
)

var errClientsNotConfigured = errors.New("remote clients are not configured")

// awsRegions is offered when the AWS region is prompted for.
var awsRegions = []string{
	"us-east-1", "us-east-2", "us-west-1", "us-west-2",
	"ca-central-1", "sa-east-1",
	"eu-west-1", "eu-west-2", "eu-west-3", "eu-central-1", "eu-north-1",
	"ap-northeast-1", "ap-northeast-2", "ap-southeast-1", "ap-southeast-2", "ap-south-1",
}

// registerInputs is the merged view of flags over config for source register.
type registerInputs struct {
	Project             string
	Location            string
	SourceID            string
	AWSRegion           string
	AccessKeyIDRef      string
	SecretAccessKeyRef  string
	DescriptionTemplate string
	Labels              map[string]string
	WaitTimeout         time.Duration
	VerifyAWS           bool
}

func runSourceRegister(cli CLI, deps Dependencies, out io.Writer) int {
	cfg, err := loadConfig(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	inputs, err := resolveRegisterInputs(cli.Source.Register, cfg, deps.Prompter)
	if err != nil {
		return exitWithError(out, err)
	}
	if deps.Clients == nil {
		return exitWithError(out, errClientsNotConfigured)
	}

	logger := newLogger(deps, cfg, cli.LogJSON)
	ctx, cancel := deps.Context()
	defer cancel()

	resolver, secretCloser, err := deps.Clients.Secrets(ctx, cfg)
	if err != nil {
		return exitWithError(out, fmt.Errorf("secret manager client: %w", err))
	}
	migration, migrationCloser, err := deps.Clients.Migration(ctx, cfg)
	if err != nil {
		closeAll(secretCloser)
		return exitWithError(out, fmt.Errorf("vm migration client: %w", err))
	}
	defer closeAll(secretCloser, migrationCloser)

	opts := register.Options{
		DescriptionTemplate: inputs.DescriptionTemplate,
		WaitTimeout:         inputs.WaitTimeout,
		Logger:              logging.WithModule(logger, "register"),
	}
	if inputs.VerifyAWS {
		opts.Verifier = deps.Clients.Verifier(cfg)
	}

	parent := source.ParentPath(inputs.Project, inputs.Location)
	registrar := register.New(resolver, migration, opts)
	result, err := registrar.Register(ctx, register.Request{
		Parent:             parent,
		SourceID:           inputs.SourceID,
		Region:             inputs.AWSRegion,
		AccessKeyIDRef:     source.SecretReference(inputs.AccessKeyIDRef),
		SecretAccessKeyRef: source.SecretReference(inputs.SecretAccessKeyRef),
		Labels:             inputs.Labels,
	})
	if err != nil {
		return exitWithError(out, err)
	}

	if err := printSource(out, cli.Source.Register.Output, "Migration source ready", result); err != nil {
		return exitWithError(out, err)
	}
	return 0
}

func resolveRegisterInputs(cmd SourceRegisterCmd, cfg config.Config, prompter interaction.Prompter) (registerInputs, error) {
	inputs := registerInputs{
		Project:             firstNonEmpty(cmd.Project, cfg.Project),
		Location:            firstNonEmpty(cmd.Location, cfg.Location),
		SourceID:            firstNonEmpty(cmd.SourceID),
		AWSRegion:           firstNonEmpty(cmd.AWSRegion, cfg.AWSRegion),
		DescriptionTemplate: firstNonEmpty(cmd.DescriptionTemplate, cfg.DescriptionTemplate),
		Labels:              mergeLabels(cfg.Labels, cmd.Labels),
		WaitTimeout:         cfg.WaitTimeout,
		VerifyAWS:           cmd.VerifyAWS || cfg.VerifyAWS,
	}
	if cmd.WaitTimeout > 0 {
		inputs.WaitTimeout = cmd.WaitTimeout
	}

	var err error
	if inputs.Project, err = interaction.Required(prompter, inputs.Project, "Google Cloud project", nil); err != nil {
		return registerInputs{}, err
	}
	if inputs.Location, err = interaction.Required(prompter, inputs.Location, "Location", nil); err != nil {
		return registerInputs{}, err
	}
	if inputs.SourceID, err = interaction.Required(prompter, inputs.SourceID, "Source ID", nil); err != nil {
		return registerInputs{}, err
	}
	if inputs.AWSRegion, err = interaction.RequiredChoice(prompter, inputs.AWSRegion, "AWS region", awsRegions); err != nil {
		return registerInputs{}, err
	}

	inputs.AccessKeyIDRef = firstNonEmpty(cmd.AccessKeyIDSecret, cfg.AccessKeyIDRef(inputs.Project))
	inputs.SecretAccessKeyRef = firstNonEmpty(cmd.SecretAccessKeySecret, cfg.SecretAccessKeyRef(inputs.Project))
	return inputs, nil
}

func runSourceGet(cli CLI, deps Dependencies, out io.Writer) int {
	cmd := cli.Source.Get
	cfg, err := loadConfig(cli, deps)
	if err != nil {
		return exitWithError(out, err)
	}
	project, err := interaction.Required(deps.Prompter, firstNonEmpty(cmd.Project, cfg.Project), "Google Cloud project", nil)
	if err != nil {
		return exitWithError(out, err)
	}
	location := firstNonEmpty(cmd.Location, cfg.Location)
	if location == "" {
		return exitWithError(out, errors.New("location is required"))
	}
	sourceID, err := interaction.Required(deps.Prompter, cmd.SourceID, "Source ID", nil)
	if err != nil {
		return exitWithError(out, err)
	}
	if deps.Clients == nil {
		return exitWithError(out, errClientsNotConfigured)
	}

	ctx, cancel := deps.Context()
	defer cancel()
	migration, closer, err := deps.Clients.Migration(ctx, cfg)
	if err != nil {
		return exitWithError(out, fmt.Errorf("vm migration client: %w", err))
	}
	defer closeAll(closer)

	path := source.SourcePath(source.ParentPath(project, location), sourceID)
	result, err := migration.GetSource(ctx, path)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return exitWithError(out, fmt.Errorf("source %s not found", path))
		}
		return exitWithError(out, fmt.Errorf("get source %s: %w", path, err))
	}
	if err := printSource(out, cmd.Output, "Migration source", result); err != nil {
		return exitWithError(out, err)
	}
	return 0
}

func loadConfig(cli CLI, deps Dependencies) (config.Config, error) {
	path, err := deps.ConfigPath(cli.ConfigFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve config path: %w", err)
	}
	return config.LoadOrDefault(path)
}

func newLogger(deps Dependencies, cfg config.Config, jsonLogs bool) *slog.Logger {
	if deps.NewLogger != nil {
		return deps.NewLogger(cfg, jsonLogs, deps.ErrOut)
	}
	return logging.New(logging.Options{Level: cfg.LogLevel, JSON: jsonLogs, Output: deps.ErrOut})
}
