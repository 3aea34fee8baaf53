// Where: vmm/internal/domain/source/types.go
// What: Migration source domain types.
// Why: Keep request/resource shapes independent of SDK protobuf types.
package source

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// SecretReference points at a versioned secret held by an external store,
// e.g. projects/p/secrets/aws-access-key-id/versions/latest.
type SecretReference string

func (r SecretReference) String() string {
	return string(r)
}

// Credentials is an AWS access key pair resolved at call time.
// It is never persisted and redacts itself when printed or logged.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{AccessKeyID: %s, SecretAccessKey: [REDACTED]}", maskKeyID(c.AccessKeyID))
}

// LogValue implements slog.LogValuer.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("access_key_id", maskKeyID(c.AccessKeyID)),
		slog.String("secret_access_key", "[REDACTED]"),
	)
}

func maskKeyID(id string) string {
	if len(id) <= 4 {
		return strings.Repeat("*", len(id))
	}
	return strings.Repeat("*", len(id)-4) + id[len(id)-4:]
}

// AWSDetails holds the provider-specific connection details of an AWS source.
type AWSDetails struct {
	Region      string
	Credentials Credentials
}

// Descriptor is the create-request payload for a migration source.
type Descriptor struct {
	Parent      string
	SourceID    string
	AWS         AWSDetails
	Description string
	Labels      map[string]string
	RequestID   string
}

// Path returns the resource path the descriptor will be registered under.
func (d Descriptor) Path() string {
	return SourcePath(d.Parent, d.SourceID)
}

// MigrationSource is the remote resource representing a registered source.
type MigrationSource struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	AWSRegion   string            `json:"awsRegion,omitempty"`
	State       string            `json:"state,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	CreateTime  time.Time         `json:"createTime,omitzero"`
	UpdateTime  time.Time         `json:"updateTime,omitzero"`
}

// ID returns the trailing source identifier of the resource name.
func (s MigrationSource) ID() string {
	idx := strings.LastIndex(s.Name, "/")
	if idx < 0 {
		return s.Name
	}
	return s.Name[idx+1:]
}
