// Where: vmm/internal/infra/config/path.go
// What: Config file discovery.
// Why: Resolve the config path from env or the user config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru-code/vmm-cli/internal/meta"
)

// EnvConfigPath names the environment variable that overrides the config path.
const EnvConfigPath = meta.EnvPrefix + "_CONFIG"

var userConfigDir = os.UserConfigDir

// Path determines the config file path.
// Priority order.
// 1. explicit (from --config).
// 2. VMM_CONFIG environment variable.
// 3. <user config dir>/vmm/config.yaml.
func Path(explicit string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		return filepath.Abs(p)
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return filepath.Abs(p)
	}
	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, meta.ConfigDirName, meta.ConfigFileName), nil
}
