// Where: vmm/internal/command/config_cmd.go
// What: config init/show command handlers.
// Why: Let users bootstrap and inspect the config file without editing YAML by hand.
package command

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/poruru-code/vmm-cli/internal/infra/config"
	"github.com/poruru-code/vmm-cli/internal/infra/interaction"
)

func runConfigInit(cli CLI, deps Dependencies, out io.Writer) int {
	ui := newUI(out)
	path, err := deps.ConfigPath(cli.ConfigFile)
	if err != nil {
		return exitWithError(out, fmt.Errorf("resolve config path: %w", err))
	}

	if !cli.Config.Init.Force {
		created, err := config.Ensure(path)
		if err != nil {
			return exitWithError(out, err)
		}
		if created {
			ui.Success(fmt.Sprintf("Config written: %s", path))
			return 0
		}
		if deps.In == nil {
			ui.Warn(fmt.Sprintf("Config already exists: %s (use --force to overwrite)", path))
			return 0
		}
		ok, err := interaction.PromptYesNoWithIO(deps.In, out, fmt.Sprintf("Overwrite %s?", path))
		if err != nil {
			return exitWithError(out, err)
		}
		if !ok {
			ui.Info("Aborted.")
			return 0
		}
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return exitWithError(out, err)
	}
	ui.Success(fmt.Sprintf("Config written: %s", path))
	return 0
}

func runConfigShow(cli CLI, deps Dependencies, out io.Writer) int {
	path, err := deps.ConfigPath(cli.ConfigFile)
	if err != nil {
		return exitWithError(out, fmt.Errorf("resolve config path: %w", err))
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return exitWithError(out, err)
	}

	ui := newUI(out)
	if _, statErr := os.Stat(path); statErr != nil {
		ui.Info(fmt.Sprintf("# %s (not found, showing defaults)", path))
	} else {
		ui.Info(fmt.Sprintf("# %s", path))
	}
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return exitWithError(out, fmt.Errorf("encode config: %w", err))
	}
	_, _ = out.Write(payload)
	return 0
}
