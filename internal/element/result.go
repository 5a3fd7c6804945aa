package element

// Status is the outcome class of an automation operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusRetry   Status = "retry"
	StatusSkip    Status = "skip"
)

// ActionResult is the uniform outcome of every automation operation and
// workflow module. Results are never mutated after construction; a retried
// operation produces a new result.
type ActionResult struct {
	Status     Status         `yaml:"status"            json:"status"`
	Message    string         `yaml:"message"           json:"message"`
	Data       map[string]any `yaml:"data,omitempty"    json:"data,omitempty"`
	Err        error          `yaml:"-"                 json:"-"`
	RetryCount int            `yaml:"retries,omitempty" json:"retries,omitempty"`
	MaxRetries int            `yaml:"-"                 json:"-"`
}

// Success reports whether the operation succeeded.
func (r ActionResult) Success() bool {
	return r.Status == StatusSuccess
}

// Skipped reports whether the operation declined to run. The workflow runner
// treats skips as non-fatal.
func (r ActionResult) Skipped() bool {
	return r.Status == StatusSkip
}

// ShouldRetry reports whether the operation asked for a retry and budget
// remains.
func (r ActionResult) ShouldRetry() bool {
	return r.Status == StatusRetry && r.RetryCount < r.MaxRetries
}

// SuccessResult builds a successful result. The optional data map carries
// operation-specific fields such as wait_time or attempts.
func SuccessResult(message string, data map[string]any) ActionResult {
	return ActionResult{Status: StatusSuccess, Message: message, Data: data}
}

// FailureResult builds a failed result, optionally carrying the causal error.
func FailureResult(message string, err error) ActionResult {
	return ActionResult{Status: StatusFailure, Message: message, Err: err}
}

// RetryResult builds a retry-eligible result with bookkeeping for the retry
// combinator.
func RetryResult(message string, retryCount, maxRetries int) ActionResult {
	return ActionResult{
		Status:     StatusRetry,
		Message:    message,
		RetryCount: retryCount,
		MaxRetries: maxRetries,
	}
}

// SkipResult builds a skipped result.
func SkipResult(message string) ActionResult {
	return ActionResult{Status: StatusSkip, Message: message}
}
