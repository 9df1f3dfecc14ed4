package check

// Report is the aggregate outcome of one check run: one Result per
// definition, in definition order. It is owned by the invocation that
// created it and never persisted.
type Report struct {
	Results []Result

	// severities parallels Results; recorded by RunAll so the aggregate
	// can be derived without re-consulting the definitions.
	severities []Severity
}

// AllBlockingPassed reports whether every blocking-severity check passed.
// A blocking check that was skipped because its prerequisite failed counts
// as not passed. Warning-severity outcomes never affect this flag.
func (r Report) AllBlockingPassed() bool {
	for i, res := range r.Results {
		if r.severities[i] == SeverityBlocking && !res.OK() {
			return false
		}
	}
	return true
}

// FailingBlocking returns the names of blocking checks that did not pass,
// in report order. Used to tell the operator exactly what gates a release.
func (r Report) FailingBlocking() []string {
	var names []string
	for i, res := range r.Results {
		if r.severities[i] == SeverityBlocking && !res.OK() {
			names = append(names, res.Name)
		}
	}
	return names
}
