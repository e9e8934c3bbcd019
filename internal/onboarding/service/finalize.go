package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"carehub/internal/onboarding/access"
	"carehub/internal/onboarding/dedup"
	"carehub/internal/onboarding/draft"
	"carehub/internal/onboarding/mapping"
	"carehub/internal/onboarding/models"
	"carehub/internal/onboarding/review"
	dErrors "carehub/pkg/domain-errors"
	audit "carehub/pkg/platform/audit"
	"carehub/pkg/platform/sentinel"
	"carehub/pkg/requestcontext"
)

// Finalize steps, in execution order.
const (
	StepLoad          = "load"
	StepReviewGate    = "review_gate"
	StepPatchProfile  = "patch_profile"
	StepReloadProfile = "reload_profile"
	StepDocuments     = "ensure_documents"
	StepCredentials   = "ensure_credentials"
	StepAssignments   = "ensure_assignments"
	StepSystemAccess  = "system_access"
	StepCleanup       = "cleanup"
)

// NextStepDone is the wizard step shown after a successful finalize.
const NextStepDone = "done"

// RecordCounts tallies one kind of child record in a run.
type RecordCounts struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// AccessOutcome reports the system-access action of a run.
type AccessOutcome struct {
	Action access.Action `json:"action"`
	UserID string        `json:"user_id,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

// Result summarises a completed finalize run.
type Result struct {
	RunID       string        `json:"run_id"`
	DraftID     string        `json:"draft_id"`
	Documents   RecordCounts  `json:"documents"`
	Credentials RecordCounts  `json:"credentials"`
	Assignments RecordCounts  `json:"assignments"`
	Access      AccessOutcome `json:"access"`
	FinalizedAt time.Time     `json:"finalized_at"`
	NextStep    string        `json:"next_step"`
}

// run is the state threaded through the saga steps of one finalize.
type run struct {
	draftID     string
	doc         draft.Document
	profile     *models.StaffProfile
	credentials []models.Credential
	assignments []models.Assignment
	result      *Result
}

// step is one saga step. Every step is safe to repeat from the top after a
// failure at any later step:
//
//   - load, review_gate and reload_profile only read
//   - patch_profile overwrites whole sections
//   - ensure_* create a record only when its dedup key is absent
//   - system_access does nothing once the profile shows a linked account
//   - cleanup deletes an entry that may already be gone
type step struct {
	name string
	run  func(ctx context.Context, r *run) error
}

func (s *Service) steps() []step {
	return []step{
		{StepLoad, s.stepLoad},
		{StepReviewGate, s.stepReviewGate},
		{StepPatchProfile, s.stepPatchProfile},
		{StepReloadProfile, s.stepReloadProfile},
		{StepDocuments, s.stepDocuments},
		{StepCredentials, s.stepCredentials},
		{StepAssignments, s.stepAssignments},
		{StepSystemAccess, s.stepSystemAccess},
		{StepCleanup, s.stepCleanup},
	}
}

// Finalize converges the staff record with the cached draft. Any step
// failure aborts the run and is returned as a *StepError; rerunning
// Finalize after a failure picks up where the server state left off.
// A draft with blocking issues fails with *review.BlockedError before any
// mutating call.
func (s *Service) Finalize(ctx context.Context, draftID string) (*Result, error) {
	draftID, err := normalizeID(draftID)
	if err != nil {
		return nil, err
	}

	if s.locker != nil {
		lease, err := s.locker.Obtain(ctx, draftID, s.lockTTL)
		if err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				s.metrics.IncrementFinalize("conflict")
				return nil, dErrors.Wrap(err, dErrors.CodeConflict, msgFinalizeRunning)
			}
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, msgFinalizeRetry)
		}
		defer func() {
			// the run's context may already be cancelled
			if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
				s.logger.WarnContext(ctx, "failed to release finalize lock", "draft_id", draftID, "error", err)
			}
		}()
	}

	runID := s.newRunID()
	start := time.Now()
	r := &run{
		draftID: draftID,
		result:  &Result{RunID: runID, DraftID: draftID},
	}

	ctx, span := s.tracer.Start(ctx, "onboarding.finalize", trace.WithAttributes(
		attribute.String("draft_id", draftID),
		attribute.String("run_id", runID),
	))
	defer span.End()

	for _, st := range s.steps() {
		if err := s.runStep(ctx, st, r); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, st.name)
			s.metrics.ObserveFinalizeLatency(time.Since(start))
			var blocked *review.BlockedError
			if errors.As(err, &blocked) {
				s.metrics.IncrementFinalize("blocked")
			} else {
				s.metrics.IncrementFinalize("failed")
			}
			s.logger.ErrorContext(ctx, "finalize failed",
				"draft_id", draftID,
				"run_id", runID,
				"step", st.name,
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			return nil, err
		}
	}

	r.result.FinalizedAt = requestcontext.Now(ctx)
	r.result.NextStep = NextStepDone
	s.metrics.IncrementFinalize("completed")
	s.metrics.ObserveFinalizeLatency(time.Since(start))
	s.emit(ctx, audit.Event{
		Subject: draftID,
		Action:  string(audit.EventOnboardingFinalize),
		RunID:   runID,
		Detail: map[string]string{
			"documents_created":   fmt.Sprint(r.result.Documents.Created),
			"credentials_created": fmt.Sprint(r.result.Credentials.Created),
			"assignments_created": fmt.Sprint(r.result.Assignments.Created),
			"access_action":       string(r.result.Access.Action),
		},
	})
	s.logger.InfoContext(ctx, "finalize completed",
		"draft_id", draftID,
		"run_id", runID,
		"documents_created", r.result.Documents.Created,
		"credentials_created", r.result.Credentials.Created,
		"assignments_created", r.result.Assignments.Created,
		"access_action", r.result.Access.Action,
	)
	return r.result, nil
}

func (s *Service) runStep(ctx context.Context, st step, r *run) error {
	ctx, span := s.tracer.Start(ctx, "onboarding.finalize."+st.name,
		trace.WithAttributes(attribute.String("step", st.name)))
	defer span.End()

	start := time.Now()
	err := st.run(ctx, r)
	s.metrics.ObserveStep(st.name, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return &StepError{Step: st.name, Err: classify(err)}
	}
	s.logger.DebugContext(ctx, "finalize step completed",
		"draft_id", r.draftID,
		"run_id", r.result.RunID,
		"step", st.name,
	)
	return nil
}

func (s *Service) stepLoad(ctx context.Context, r *run) error {
	doc, profile, err := s.load(ctx, r.draftID)
	if err != nil {
		return err
	}
	r.doc = doc
	r.profile = profile
	return nil
}

// stepReviewGate refuses drafts with blocking issues, then maps and validates
// every child record so a malformed entry fails before the first write.
func (s *Service) stepReviewGate(_ context.Context, r *run) error {
	issues := review.Validate(r.doc)
	if review.HasBlocking(issues) {
		blocking := review.BlockingOnly(issues)
		for _, i := range blocking {
			s.metrics.IncrementBlockingIssue(i.Key)
		}
		return &review.BlockedError{Issues: blocking}
	}

	for n, raw := range r.doc.Credentials() {
		cred := mapping.MapCredentialDraft(raw)
		if cred.IsPlaceholder() {
			r.result.Credentials.Skipped++
			continue
		}
		if err := mapping.ValidateRecord(fmt.Sprintf("credential #%d", n+1), cred); err != nil {
			return err
		}
		r.credentials = append(r.credentials, cred)
	}

	homeBranch := r.doc.HomeBranchID()
	for n, raw := range r.doc.Assignments() {
		a := mapping.MapAssignmentDraft(raw, homeBranch)
		if a.BranchID == "" {
			r.result.Assignments.Skipped++
			continue
		}
		if err := mapping.ValidateRecord(fmt.Sprintf("assignment #%d", n+1), a); err != nil {
			return err
		}
		r.assignments = append(r.assignments, a)
	}
	return nil
}

func (s *Service) stepPatchProfile(ctx context.Context, r *run) error {
	return s.staff.PatchStaff(ctx, r.draftID, models.ProfilePatch{
		OnboardingStatus:  models.OnboardingFinalized,
		PersonalDetails:   r.doc.RawSection(draft.SectionPersonal),
		ContactDetails:    r.doc.RawSection(draft.SectionContact),
		EmploymentDetails: r.doc.RawSection(draft.SectionEmployment),
		MedicalDetails:    r.doc.RawSection(draft.SectionMedical),
	})
}

func (s *Service) stepReloadProfile(ctx context.Context, r *run) error {
	profile, err := s.staff.GetStaff(ctx, r.draftID)
	if err != nil {
		return err
	}
	r.profile = profile
	return nil
}

func (s *Service) stepDocuments(ctx context.Context, r *run) error {
	existing := dedup.DocumentKeys(r.profile.Documents)
	for _, ref := range r.doc.Documents() {
		key := dedup.DocumentKey(string(ref.Type), ref.URL)
		if existing.Has(key) {
			r.result.Documents.Skipped++
			s.metrics.IncrementChildRecord("document", "skipped")
			continue
		}
		_, err := s.staff.AddDocument(ctx, r.draftID, models.Document{
			Type:               string(ref.Type),
			FileURL:            ref.URL,
			IsRequired:         false,
			SetAsStaffPointer:  true,
			VerificationStatus: models.VerificationUnverified,
		})
		if err != nil {
			return err
		}
		existing.Add(key)
		r.result.Documents.Created++
		s.metrics.IncrementChildRecord("document", "created")
		s.emit(ctx, audit.Event{
			Subject: r.draftID,
			Action:  string(audit.EventDocumentAdded),
			RunID:   r.result.RunID,
			Detail:  map[string]string{"type": string(ref.Type)},
		})
	}
	return nil
}

func (s *Service) stepCredentials(ctx context.Context, r *run) error {
	existing := dedup.CredentialKeys(r.profile.Credentials)
	for _, cred := range r.credentials {
		key := dedup.CredentialKey(cred)
		if existing.Has(key) {
			r.result.Credentials.Skipped++
			s.metrics.IncrementChildRecord("credential", "skipped")
			continue
		}
		if _, err := s.staff.AddCredential(ctx, r.draftID, cred); err != nil {
			return err
		}
		// identical entries later in the same draft must not be created twice
		existing.Add(key)
		r.result.Credentials.Created++
		s.metrics.IncrementChildRecord("credential", "created")
		s.emit(ctx, audit.Event{
			Subject: r.draftID,
			Action:  string(audit.EventCredentialAdded),
			RunID:   r.result.RunID,
			Detail:  map[string]string{"type": string(cred.Type)},
		})
	}
	return nil
}

func (s *Service) stepAssignments(ctx context.Context, r *run) error {
	existing := dedup.AssignmentKeys(r.profile.Assignments)
	for _, a := range r.assignments {
		key := dedup.AssignmentKey(a)
		if existing.Has(key) {
			r.result.Assignments.Skipped++
			s.metrics.IncrementChildRecord("assignment", "skipped")
			continue
		}
		if _, err := s.staff.AddAssignment(ctx, r.draftID, a); err != nil {
			return err
		}
		existing.Add(key)
		r.result.Assignments.Created++
		s.metrics.IncrementChildRecord("assignment", "created")
		s.emit(ctx, audit.Event{
			Subject: r.draftID,
			Action:  string(audit.EventAssignmentAdded),
			RunID:   r.result.RunID,
			Detail:  map[string]string{"branch_id": a.BranchID, "type": string(a.AssignmentType)},
		})
	}
	return nil
}

// stepSystemAccess reloads the profile first so an account linked by an
// earlier, partially failed run is seen.
func (s *Service) stepSystemAccess(ctx context.Context, r *run) error {
	profile, err := s.staff.GetStaff(ctx, r.draftID)
	if err != nil {
		return err
	}
	r.profile = profile

	plan, err := access.Decide(access.InputFromDraft(r.doc), profile)
	if err != nil {
		return err
	}
	outcome, err := access.NewResolver(s.staff).Apply(ctx, r.draftID, plan)
	if err != nil {
		return err
	}
	r.result.Access = AccessOutcome{Action: outcome.Action, UserID: outcome.UserID, Reason: outcome.Reason}
	s.metrics.IncrementAccessAction(string(outcome.Action))

	switch outcome.Action {
	case access.ActionProvision:
		s.emit(ctx, audit.Event{
			Subject: r.draftID,
			Action:  string(audit.EventAccessProvisioned),
			RunID:   r.result.RunID,
			Detail:  map[string]string{"user_id": outcome.UserID, "role_code": plan.RoleCode},
		})
	case access.ActionLink:
		s.emit(ctx, audit.Event{
			Subject: r.draftID,
			Action:  string(audit.EventAccessLinked),
			RunID:   r.result.RunID,
			Detail:  map[string]string{"user_id": outcome.UserID, "role_code": plan.RoleCode},
		})
	}
	return nil
}

func (s *Service) stepCleanup(ctx context.Context, r *run) error {
	if err := s.drafts.Delete(ctx, r.draftID); err != nil {
		return draftStoreError(err, "Onboarding was saved but the draft could not be cleared. Please retry.")
	}
	return nil
}

func newRunID() string {
	return uuid.NewString()
}
