// Where: vmm/internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/poruru-code/vmm-cli/internal/infra/config"
	"github.com/poruru-code/vmm-cli/internal/infra/interaction"
	"github.com/poruru-code/vmm-cli/internal/infra/ui"
	"github.com/poruru-code/vmm-cli/internal/meta"
	"github.com/poruru-code/vmm-cli/internal/ports"
	"github.com/poruru-code/vmm-cli/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// This structure enables dependency injection for testing and allows swapping
// implementations of various subsystems.
type Dependencies struct {
	Out        io.Writer
	ErrOut     io.Writer
	In         io.Reader
	Prompter   interaction.Prompter
	ConfigPath func(explicit string) (string, error)
	NewLogger  func(cfg config.Config, jsonLogs bool, out io.Writer) *slog.Logger
	Clients    ClientFactory
	Context    func() (context.Context, context.CancelFunc)
}

// ClientFactory builds the remote collaborators for a command from config.
// Each returned closer releases the connection and may be nil.
type ClientFactory interface {
	Secrets(ctx context.Context, cfg config.Config) (ports.SecretResolver, io.Closer, error)
	Migration(ctx context.Context, cfg config.Config) (ports.MigrationService, io.Closer, error)
	Verifier(cfg config.Config) ports.CredentialVerifier
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	ConfigFile string     `name:"config-file" short:"c" help:"Path to config file (default: $VMM_CONFIG or <user config dir>/vmm/config.yaml)"`
	EnvFile    string     `name:"env-file" help:"Path to .env file"`
	LogJSON    bool       `name:"log-json" help:"Emit JSON logs on stderr"`
	Source     SourceCmd  `cmd:"" help:"Manage migration sources"`
	Config     ConfigCmd  `cmd:"" help:"Manage configuration"`
	Version    VersionCmd `cmd:"" help:"Show version information"`
}

type (
	SourceCmd struct {
		Register SourceRegisterCmd `cmd:"" help:"Register an AWS account/region as a migration source"`
		Get      SourceGetCmd      `cmd:"" help:"Show a registered migration source"`
	}

	// SourceRegisterCmd defines the source register command flags.
	SourceRegisterCmd struct {
		Project               string            `short:"p" env:"VMM_PROJECT" help:"Google Cloud project ID"`
		Location              string            `short:"l" env:"VMM_LOCATION" help:"Google Cloud region for the source"`
		SourceID              string            `name:"source-id" short:"s" help:"Name for the new source"`
		AWSRegion             string            `name:"aws-region" env:"VMM_AWS_REGION" help:"AWS region of the source VMs"`
		AccessKeyIDSecret     string            `name:"access-key-id-secret" help:"Secret reference for the AWS access key ID"`
		SecretAccessKeySecret string            `name:"secret-access-key-secret" help:"Secret reference for the AWS secret access key"`
		DescriptionTemplate   string            `name:"description-template" help:"Go template for the source description"`
		Labels                map[string]string `name:"label" help:"Source label key=value (repeatable)"`
		WaitTimeout           time.Duration     `name:"wait-timeout" help:"Bound the operation wait (0: unbounded)"`
		VerifyAWS             bool              `name:"verify-aws" help:"Check the AWS credentials with STS before registering"`
		Output                string            `short:"o" default:"text" enum:"text,yaml,json" help:"Output format (text/yaml/json)"`
	}

	// SourceGetCmd defines the source get command flags.
	SourceGetCmd struct {
		Project  string `short:"p" env:"VMM_PROJECT" help:"Google Cloud project ID"`
		Location string `short:"l" env:"VMM_LOCATION" help:"Google Cloud region for the source"`
		SourceID string `name:"source-id" short:"s" help:"Source name"`
		Output   string `short:"o" default:"text" enum:"text,yaml,json" help:"Output format (text/yaml/json)"`
	}

	ConfigCmd struct {
		Init ConfigInitCmd `cmd:"" help:"Write a default config file"`
		Show ConfigShowCmd `cmd:"" help:"Print the effective config"`
	}

	ConfigInitCmd struct {
		Force bool `short:"f" help:"Overwrite an existing config file"`
	}

	ConfigShowCmd struct{}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments, identifies the requested command,
// and dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.ConfigPath == nil {
		deps.ConfigPath = config.Path
	}
	if deps.Context == nil {
		deps.Context = func() (context.Context, context.CancelFunc) {
			return context.WithCancel(context.Background())
		}
	}
	ui := newUI(out)

	if len(args) == 0 {
		return runNoArgs(out)
	}

	// Env files feed the env-tagged flags, so they load before parsing.
	loadEnvFile(envFileArg(args), ui)

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Register AWS migration sources with Google Cloud VM Migration."),
		kong.Writers(out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return handleParseError(err, out)
	}

	if exitCode, handled := dispatchCommand(ctx.Command(), cli, deps, out); handled {
		return exitCode
	}

	ui.Warn("unknown command")
	return 1
}

// envFileArg returns the value of --env-file from raw args, or "".
func envFileArg(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if value, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return value
		}
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// loadEnvFile loads path, or ./.env when path is empty and the file exists.
func loadEnvFile(path string, u ui.UserInterface) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			u.Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			u.Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
		}
	}
}

type commandHandler func(CLI, Dependencies, io.Writer) int

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	handlers := map[string]commandHandler{
		"source register": runSourceRegister,
		"source get":      runSourceGet,
		"config init":     runConfigInit,
		"config show":     runConfigShow,
		"version":         func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	if handler, ok := handlers[command]; ok {
		return handler(cli, deps, out), true
	}
	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	newUI(out).Info(version.GetVersion())
	return 0
}

func runNoArgs(out io.Writer) int {
	ui := newUI(out)
	cmd := meta.AppName
	ui.Info("Usage:")
	ui.Info(fmt.Sprintf("  %s source register --project <id> --source-id <name> --aws-region <region> [flags]", cmd))
	ui.Info(fmt.Sprintf("  %s source get --project <id> --source-id <name>", cmd))
	ui.Info("")
	ui.Info(fmt.Sprintf("Try: %s --help", cmd))
	return 0
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, out io.Writer) int {
	msg := err.Error()
	if strings.Contains(msg, "expected string value") || strings.Contains(msg, "expected duration") {
		ui := newUI(out)
		switch {
		case strings.Contains(msg, "--wait-timeout"):
			ui.Warn("`--wait-timeout` expects a duration such as 30m or 1h.")
			return 1
		case strings.Contains(msg, "--source-id"):
			ui.Warn("`-s/--source-id` expects a value. Provide a name or omit the flag for interactive input.")
			ui.Info(fmt.Sprintf("Example: %s source register -s aws-prod", meta.AppName))
			return 1
		}
	}
	return exitWithError(out, err)
}
