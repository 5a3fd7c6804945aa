package element

import "errors"

// Failure classes carried inside ActionResult.Err. Primitives and strategies
// never let raw errors cross package boundaries; they wrap one of these so
// callers can branch with errors.Is.
var (
	// ErrDetection means no strategy located the element within threshold.
	ErrDetection = errors.New("element not detected")

	// ErrTimeout means a wait loop exhausted its budget.
	ErrTimeout = errors.New("wait timed out")

	// ErrInteraction means an injected input event could not be delivered.
	ErrInteraction = errors.New("input event failed")

	// ErrConfiguration means a template file or required config key is missing.
	ErrConfiguration = errors.New("configuration error")

	// ErrExternalProcess means the target application failed to launch or
	// never reached its ready signal.
	ErrExternalProcess = errors.New("external process error")
)
