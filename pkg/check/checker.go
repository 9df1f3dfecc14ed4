package check

import "fmt"

// Checker is implemented by all check types.
// Each check validates one aspect of deployment readiness and returns a
// Result indicating success or failure. Checks must be side-effect-free;
// the only sanctioned external action is a read-only probe (stat a file,
// query the platform CLI for the current identity).
//
// Implementations:
//   - toolcheck.InstalledCheck: verifies the platform CLI exists, with an
//     optional minimum version
//   - toolcheck.AuthCheck: verifies the platform CLI has an active credential
//   - filecheck.Check: checks file/directory presence and content
//   - secretcheck.Check: detects un-rotated placeholder secrets
//   - artifactcheck.Check: verifies a build artifact's digest
//   - healthcheck.Check: probes a deployed service URL
type Checker interface {
	Run() Result
}

// Definition binds a named checker to its severity and an optional
// prerequisite. Definitions are built once at startup and never mutated.
type Definition struct {
	Name     string
	Severity Severity
	Requires string // name of a prerequisite definition, or ""
	Checker  Checker
}

// RunAll executes every definition in order and returns the aggregate
// report. The run never short-circuits: each definition produces exactly
// one Result even when earlier checks fail. A definition whose prerequisite
// did not pass is skipped without invoking its checker, so a missing tool
// reports "not found" once instead of cascading into misleading
// authentication failures.
func RunAll(defs []Definition) Report {
	report := Report{Results: make([]Result, 0, len(defs))}
	passed := make(map[string]bool, len(defs))

	for _, def := range defs {
		if def.Requires != "" && !passed[def.Requires] {
			report.Results = append(report.Results, Result{
				Name:    def.Name,
				Status:  StatusSkip,
				Details: []string{fmt.Sprintf("skipped: prerequisite %q failed", def.Requires)},
			})
			report.severities = append(report.severities, def.Severity)
			continue
		}

		result := runOne(def)
		passed[def.Name] = result.OK()
		report.Results = append(report.Results, result)
		report.severities = append(report.severities, def.Severity)
	}

	return report
}

// runOne invokes a single checker, converting panics into FAIL results and
// downgrading failures of warning-severity definitions to WARN.
func runOne(def Definition) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = Result{Name: def.Name}
			result.Failf("check panicked: %v", rec)
			result = applySeverity(result, def.Severity)
		}
	}()

	result = def.Checker.Run()
	if result.Name == "" {
		result.Name = def.Name
	}
	return applySeverity(result, def.Severity)
}

func applySeverity(r Result, sev Severity) Result {
	if r.Status == StatusFail && sev == SeverityWarning {
		r.Status = StatusWarn
	}
	return r
}
