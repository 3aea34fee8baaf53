// Where: vmm/internal/domain/source/paths.go
// What: Resource path helpers for VM Migration and Secret Manager names.
// Why: Derive resource paths deterministically from their components.
package source

import (
	"fmt"
	"strings"
)

const sourcesCollection = "/sources/"

// ParentPath returns projects/{project}/locations/{location}.
func ParentPath(project, location string) string {
	return fmt.Sprintf("projects/%s/locations/%s", project, location)
}

// SourcePath returns the path of source id under parent.
func SourcePath(parent, id string) string {
	return strings.TrimSuffix(parent, "/") + sourcesCollection + id
}

// SecretVersionRef returns projects/{project}/secrets/{secret}/versions/{version}.
// An empty version means "latest".
func SecretVersionRef(project, secret, version string) SecretReference {
	if strings.TrimSpace(version) == "" {
		version = "latest"
	}
	return SecretReference(fmt.Sprintf("projects/%s/secrets/%s/versions/%s", project, secret, version))
}
