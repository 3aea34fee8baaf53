// Where: vmm/internal/usecase/register/errors.go
// What: Registration error taxonomy.
// Why: Callers branch on secret resolution failures versus registration failures.
package register

import (
	"errors"
	"fmt"

	"github.com/poruru-code/vmm-cli/internal/domain/source"
)

// ErrEmptySecret is wrapped by SecretNotFoundError when a secret resolves to
// an empty value.
var ErrEmptySecret = errors.New("secret payload is empty")

// SecretNotFoundError reports a secret reference that could not be resolved.
type SecretNotFoundError struct {
	Ref source.SecretReference
	Err error
}

func (e *SecretNotFoundError) Error() string {
	return fmt.Sprintf("secret %s not found: %v", e.Ref, e.Err)
}

func (e *SecretNotFoundError) Unwrap() error {
	return e.Err
}

// RegistrationFailedError reports any non-idempotent failure while submitting,
// awaiting or fetching a migration source.
type RegistrationFailedError struct {
	Phase    State
	Parent   string
	SourceID string
	Err      error
}

func (e *RegistrationFailedError) Error() string {
	return fmt.Sprintf("register source %s under %s failed while %s: %v", e.SourceID, e.Parent, e.Phase, e.Err)
}

func (e *RegistrationFailedError) Unwrap() error {
	return e.Err
}

// IsSecretNotFound reports whether err is a SecretNotFoundError.
func IsSecretNotFound(err error) bool {
	var target *SecretNotFoundError
	return errors.As(err, &target)
}

// IsRegistrationFailed reports whether err is a RegistrationFailedError.
func IsRegistrationFailed(err error) bool {
	var target *RegistrationFailedError
	return errors.As(err, &target)
}
