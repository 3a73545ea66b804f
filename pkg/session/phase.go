package session

// Phase is the orchestrator's top-level state.
type Phase string

const (
	// PhaseAwaitingTerms is the initial phase: everything is blocked until
	// the terms gate resolves.
	PhaseAwaitingTerms Phase = "awaiting_terms"

	// PhaseLoading covers the concurrent config fetch and geolocation
	// resolution. A config load failure stalls the session here permanently.
	PhaseLoading Phase = "loading_config_and_location"

	// PhaseReady accepts user input and submit attempts.
	PhaseReady Phase = "ready"

	// PhaseSubmitting means a POST is in flight; controls are disabled.
	PhaseSubmitting Phase = "submitting"

	// PhaseSubmitFailed is transient: the failure notification is surfaced
	// and the session returns to PhaseReady with its state intact.
	PhaseSubmitFailed Phase = "submit_failed"

	// PhaseSubmitSucceeded is terminal; the caller navigates away.
	PhaseSubmitSucceeded Phase = "submit_succeeded"
)

// Terminal reports whether no further transitions occur from this phase.
func (p Phase) Terminal() bool {
	return p == PhaseSubmitSucceeded
}
