package check

// Status represents the outcome of a check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "FAIL"
	StatusWarn Status = "WARN"
	StatusSkip Status = "SKIP"
)

// Severity classifies how a failing check affects the release gate.
type Severity string

const (
	// SeverityBlocking checks must pass before a release may start.
	SeverityBlocking Severity = "blocking"
	// SeverityWarning checks are surfaced to the operator but never
	// gate a release.
	SeverityWarning Severity = "warning"
)

// Result holds the outcome of a single check.
type Result struct {
	Name    string   // e.g., "tool: gcloud", "secret: SECRET_KEY"
	Status  Status   // OK, FAIL, WARN, or SKIP
	Details []string // human-readable details
	Err     error    // underlying error for failures
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusOK
}
