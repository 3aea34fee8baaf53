// Where: vmm/internal/usecase/register/state.go
// What: Per-invocation registration phases.
// Why: Tag log lines and failures with the phase they happened in.
package register

// State is a phase of a single Register call.
type State string

const (
	StateIdle              State = "idle"
	StateResolvingSecrets  State = "resolving_secrets"
	StateVerifying         State = "verifying_credentials"
	StateSubmitting        State = "submitting"
	StateAwaitingOperation State = "awaiting_operation"
	StateFetchingExisting  State = "fetching_existing"
	StateSucceeded         State = "succeeded"
	StateFailed            State = "failed"
)

