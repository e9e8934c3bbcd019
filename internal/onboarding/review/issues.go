// Package review evaluates an onboarding draft against the business rules
// that gate finalization. Evaluation is pure: no I/O, same input same output.
package review

import (
	"fmt"
	"strings"
)

// Severity decides whether an issue blocks finalize.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
)

// Wizard step keys an issue can point the operator to.
const (
	StepStart          = "start"
	StepPersonal       = "personal"
	StepContact        = "contact"
	StepAddress        = "address"
	StepEmployment     = "employment"
	StepAssignments    = "assignments"
	StepCredentials    = "credentials"
	StepPhotoBiometric = "photo-biometric"
)

// Issue is one rule violation. Key is unique per rule.
type Issue struct {
	Key      string   `json:"key"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	StepKey  string   `json:"stepKey,omitempty"`
}

// Blocking reports whether the issue prevents finalize.
func (i Issue) Blocking() bool {
	return i.Severity == SeverityError
}

// HasBlocking reports whether any issue has error severity.
func HasBlocking(issues []Issue) bool {
	for _, i := range issues {
		if i.Blocking() {
			return true
		}
	}
	return false
}

// BlockingOnly filters issues down to the ones with error severity.
func BlockingOnly(issues []Issue) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, i := range issues {
		if i.Blocking() {
			out = append(out, i)
		}
	}
	return out
}

// BlockedError is returned when finalize is attempted with blocking issues.
type BlockedError struct {
	Issues []Issue
}

func (e *BlockedError) Error() string {
	keys := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		keys = append(keys, i.Key)
	}
	return fmt.Sprintf("onboarding has %d blocking issue(s): %s", len(e.Issues), strings.Join(keys, ", "))
}
