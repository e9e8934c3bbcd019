package service

import (
	"context"
	"errors"
	"fmt"

	"carehub/internal/onboarding/mapping"
	"carehub/internal/onboarding/review"
	"carehub/internal/staffapi"
	dErrors "carehub/pkg/domain-errors"
)

// StepError names the finalize step that failed. The wrapped error carries
// the domain code and the user-facing message.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("finalize step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedStep returns the step name carried by err, if any.
func FailedStep(err error) string {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}

// classify gives every step failure a domain code. Already-coded errors and
// blocking-issue errors pass through unchanged.
func classify(err error) error {
	var blocked *review.BlockedError
	if errors.As(err, &blocked) {
		return err
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	var invalid *mapping.InvalidRecordError
	if errors.As(err, &invalid) {
		return dErrors.Wrap(err, dErrors.CodePrecondition, invalid.Error())
	}
	return upstreamError(err, msgFinalizeRetry)
}

// upstreamError keeps the staff service's message when it sent one.
func upstreamError(err error, fallback string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, fallback)
	}
	if msg := staffapi.MessageOf(err); msg != "" {
		return dErrors.Wrap(err, dErrors.CodeUpstream, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeUpstream, fallback)
}
