// Where: vmm/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep brand, env prefix and default secret names in one place.
package meta

const (
	// Project Identity
	AppName   = "vmm"
	Slug      = "vmm"
	EnvPrefix = "VMM"

	// Directory Layout
	ConfigDirName  = "vmm"
	ConfigFileName = "config.yaml"

	// Default Secret Manager secret ids for the AWS access key pair.
	AccessKeyIDSecret     = "aws-access-key-id"
	SecretAccessKeySecret = "aws-secret-access-key"
	LatestSecretVersion   = "latest"
)
