// Where: vmm/internal/infra/config/config.go
// What: Config file load/save and defaults.
// Why: Persist per-user defaults for project, location and secret references.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
	"github.com/poruru-code/vmm-cli/internal/meta"
)

// CurrentVersion is the config file format version written by this CLI.
const CurrentVersion = 1

// Config represents <user config dir>/vmm/config.yaml.
type Config struct {
	Version             int               `yaml:"version"`
	Project             string            `yaml:"project,omitempty"`
	Location            string            `yaml:"location,omitempty"`
	AWSRegion           string            `yaml:"aws_region,omitempty"`
	Secrets             SecretRefs        `yaml:"secrets,omitempty"`
	DescriptionTemplate string            `yaml:"description_template,omitempty"`
	Labels              map[string]string `yaml:"labels,omitempty"`
	WaitTimeout         time.Duration     `yaml:"wait_timeout,omitempty"`
	VerifyAWS           bool              `yaml:"verify_aws,omitempty"`
	LogLevel            string            `yaml:"log_level,omitempty"`
	CredentialsFile     string            `yaml:"credentials_file,omitempty"`
	QuotaProject        string            `yaml:"quota_project,omitempty"`
	Endpoints           Endpoints         `yaml:"endpoints,omitempty"`
}

// SecretRefs stores the secret references of the AWS access key pair.
type SecretRefs struct {
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
}

// Endpoints overrides API endpoints, mainly for emulators and tests.
type Endpoints struct {
	VMMigration   string `yaml:"vmmigration,omitempty"`
	SecretManager string `yaml:"secretmanager,omitempty"`
	STS           string `yaml:"sts,omitempty"`
}

// DefaultConfig returns an initialized Config with version set.
func DefaultConfig() Config {
	return Config{
		Version:  CurrentVersion,
		Location: "us-central1",
		LogLevel: "info",
		Labels:   map[string]string{},
	}
}

// Load reads, validates and decodes the config file at path.
func Load(path string) (Config, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := Validate(payload); err != nil {
		return Config{}, fmt.Errorf("validate config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, returning DefaultConfig when the file is absent.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Ensure creates the config file with defaults if it doesn't exist.
// It reports whether a file was created.
func Ensure(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, Save(path, DefaultConfig())
		}
		return false, fmt.Errorf("stat config: %w", err)
	}
	return false, nil
}

// AccessKeyIDRef returns the configured access key id reference, or the
// conventional Secret Manager name under project.
func (c Config) AccessKeyIDRef(project string) string {
	if c.Secrets.AccessKeyID != "" {
		return c.Secrets.AccessKeyID
	}
	return defaultSecretRef(project, meta.AccessKeyIDSecret)
}

// SecretAccessKeyRef is the AccessKeyIDRef counterpart for the secret key.
func (c Config) SecretAccessKeyRef(project string) string {
	if c.Secrets.SecretAccessKey != "" {
		return c.Secrets.SecretAccessKey
	}
	return defaultSecretRef(project, meta.SecretAccessKeySecret)
}

func defaultSecretRef(project, secret string) string {
	if project == "" {
		return ""
	}
	return source.SecretVersionRef(project, secret, meta.LatestSecretVersion).String()
}
