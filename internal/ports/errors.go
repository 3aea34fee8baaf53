// Where: vmm/internal/ports/errors.go
// What: Collaborator error sentinels.
// Why: Let adapters translate SDK status codes into errors the usecase can branch on.
package ports

import "errors"

var (
	// ErrNotFound indicates the named secret version or resource does not exist
	// or is not accessible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a resource with the requested id already exists.
	ErrAlreadyExists = errors.New("already exists")
)
