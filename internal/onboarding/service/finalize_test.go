package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"carehub/internal/onboarding/access"
	"carehub/internal/onboarding/lock"
	"carehub/internal/onboarding/models"
	"carehub/internal/onboarding/review"
	"carehub/internal/onboarding/store/drafts"
	"carehub/internal/staffapi"
	dErrors "carehub/pkg/domain-errors"
	audit "carehub/pkg/platform/audit"
	"carehub/pkg/platform/audit/publisher"
	auditmemory "carehub/pkg/platform/audit/store/memory"
	"carehub/pkg/requestcontext"
)

const staffID = "STF-1"

type FinalizeSuite struct {
	suite.Suite
	staff  *fakeStaff
	drafts *flakyDrafts
	audit  *auditmemory.InMemoryStore
	locker *lock.LocalLocker
	svc    *Service
	ctx    context.Context
}

func TestFinalizeSuite(t *testing.T) {
	suite.Run(t, new(FinalizeSuite))
}

func (s *FinalizeSuite) SetupTest() {
	s.staff = newFakeStaff()
	s.staff.addProfile(&models.StaffProfile{ID: staffID, OnboardingStatus: "DRAFT"})
	s.drafts = &flakyDrafts{InMemoryStore: drafts.NewInMemory()}
	s.audit = auditmemory.NewInMemoryStore()
	s.locker = lock.NewLocal()

	runs := 0
	svc, err := New(s.staff, s.drafts,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(publisher.NewPublisher(s.audit)),
		WithLocker(s.locker, time.Minute),
		WithRunIDs(func() string {
			runs++
			return "run-" + strconv.Itoa(runs)
		}),
	)
	s.Require().NoError(err)
	s.svc = svc

	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))
	s.Require().NoError(s.drafts.Set(s.ctx, staffID, clinicalDraft()))
}

func (s *FinalizeSuite) requireConverged() *models.StaffProfile {
	p := s.staff.snapshot(staffID)
	s.Equal(models.OnboardingFinalized, p.OnboardingStatus)
	s.Len(p.Documents, 2)
	s.Len(p.Credentials, 2)
	s.Len(p.Assignments, 2)
	s.Require().NotNil(p.User)
	s.Equal("asha.rao@hospital.org", p.User.Email)

	_, err := s.drafts.Get(s.ctx, staffID)
	s.Error(err, "draft must be cleared after a successful run")
	return p
}

// =============================================================================
// Happy path
// =============================================================================

func (s *FinalizeSuite) TestFinalizeCreatesEveryRecordOnce() {
	res, err := s.svc.Finalize(s.ctx, "  "+staffID+" ")
	s.Require().NoError(err)

	s.Equal("run-1", res.RunID)
	s.Equal(staffID, res.DraftID)
	s.Equal(RecordCounts{Created: 2}, res.Documents)
	// one in-draft duplicate and one placeholder
	s.Equal(RecordCounts{Created: 2, Skipped: 2}, res.Credentials)
	s.Equal(RecordCounts{Created: 2}, res.Assignments)
	s.Equal(access.ActionProvision, res.Access.Action)
	s.NotEmpty(res.Access.UserID)
	s.Equal(NextStepDone, res.NextStep)
	s.Equal(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), res.FinalizedAt)

	p := s.requireConverged()
	s.Equal(1, s.staff.callCount("ProvisionUser"))
	s.Equal("Asha", p.PersonalDetails["first_name"])
	s.Equal("B1", p.Assignments[1].BranchID, "assignment without a branch falls back to the home branch")
	for _, d := range p.Documents {
		s.True(d.SetAsStaffPointer)
		s.False(d.IsRequired)
		s.Equal(models.VerificationUnverified, d.VerificationStatus)
	}
}

func (s *FinalizeSuite) TestFinalizeEmitsAuditTrail() {
	_, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().NoError(err)

	events, err := s.audit.ListBySubject(s.ctx, staffID)
	s.Require().NoError(err)

	counts := map[string]int{}
	for _, e := range events {
		counts[e.Action]++
		s.Equal("run-1", e.RunID)
	}
	s.Equal(2, counts[string(audit.EventDocumentAdded)])
	s.Equal(2, counts[string(audit.EventCredentialAdded)])
	s.Equal(2, counts[string(audit.EventAssignmentAdded)])
	s.Equal(1, counts[string(audit.EventAccessProvisioned)])
	s.Equal(1, counts[string(audit.EventOnboardingFinalize)])
}

func (s *FinalizeSuite) TestRerunWithSameDraftCreatesNothing() {
	_, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().NoError(err)

	s.Require().NoError(s.drafts.Set(s.ctx, staffID, clinicalDraft()))
	res, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().NoError(err)

	s.Equal(RecordCounts{Skipped: 2}, res.Documents)
	s.Equal(RecordCounts{Skipped: 4}, res.Credentials)
	s.Equal(RecordCounts{Skipped: 2}, res.Assignments)
	s.Equal(access.ActionNone, res.Access.Action)
	s.Equal(access.ReasonAlreadyLinked, res.Access.Reason)
	s.requireConverged()
	s.Equal(1, s.staff.callCount("ProvisionUser"))
}

// =============================================================================
// Failure and retry
// =============================================================================

func (s *FinalizeSuite) TestRetryConvergesAfterFailureAtEveryStep() {
	boom := errors.New("connection reset by peer")
	cases := []struct {
		name   string
		inject func()
		step   string
	}{
		{"load", func() { s.staff.failAfter("GetStaff", 0, boom) }, StepLoad},
		{"patch", func() { s.staff.failAfter("PatchStaff", 0, boom) }, StepPatchProfile},
		{"reload", func() { s.staff.failAfter("GetStaff", 1, boom) }, StepReloadProfile},
		{"second document", func() { s.staff.failAfter("AddDocument", 1, boom) }, StepDocuments},
		{"second credential", func() { s.staff.failAfter("AddCredential", 1, boom) }, StepCredentials},
		{"first assignment", func() { s.staff.failAfter("AddAssignment", 0, boom) }, StepAssignments},
		{"access reload", func() { s.staff.failAfter("GetStaff", 2, boom) }, StepSystemAccess},
		{"provision", func() { s.staff.failAfter("ProvisionUser", 0, boom) }, StepSystemAccess},
		{"cleanup", func() { s.drafts.failNextDelete(boom) }, StepCleanup},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.inject()

			_, err := s.svc.Finalize(s.ctx, staffID)
			s.Require().Error(err)
			s.Equal(tc.step, FailedStep(err))
			s.ErrorIs(err, boom)

			_, err = s.svc.Finalize(s.ctx, staffID)
			s.Require().NoError(err)
			s.requireConverged()
		})
	}
}

func (s *FinalizeSuite) TestFailureKeepsDraft() {
	s.staff.failAfter("AddAssignment", 0, errors.New("boom"))

	_, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().Error(err)

	doc, err := s.drafts.Get(s.ctx, staffID)
	s.Require().NoError(err)
	s.Equal("EMP-042", doc.EmployeeID())
}

func (s *FinalizeSuite) TestUpstreamMessageIsSurfaced() {
	s.staff.failAfter("AddCredential", 0, &staffapi.APIError{
		Status:  http.StatusConflict,
		Method:  http.MethodPost,
		Path:    "/staff/STF-1/credentials",
		Message: "Registration number MC-123 is already in use",
	})

	_, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().Error(err)

	de, ok := dErrors.As(err)
	s.Require().True(ok)
	s.Equal(dErrors.CodeUpstream, de.Code)
	s.Equal("Registration number MC-123 is already in use", de.Message)
	s.Equal(StepCredentials, FailedStep(err))
}

func (s *FinalizeSuite) TestFallbackMessageWithoutUpstreamMessage() {
	s.staff.failAfter("PatchStaff", 0, &staffapi.APIError{Status: http.StatusBadGateway, Method: http.MethodPatch, Path: "/staff/STF-1"})

	_, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().Error(err)

	de, ok := dErrors.As(err)
	s.Require().True(ok)
	s.Equal(msgFinalizeRetry, de.Message)
}

func (s *FinalizeSuite) TestTimeoutIsClassified() {
	s.staff.failAfter("AddDocument", 0, context.DeadlineExceeded)

	_, err := s.svc.Finalize(s.ctx, staffID)
	s.True(dErrors.Is(err, dErrors.CodeTimeout))
}

// =============================================================================
// Preconditions
// =============================================================================

func (s *FinalizeSuite) TestBlockingIssuesStopBeforeAnyWrite() {
	doc := clinicalDraft()
	delete(doc, "credentials")
	doc["personal_details"].(map[string]any)["first_name"] = " "
	s.Require().NoError(s.drafts.Set(s.ctx, staffID, doc))

	_, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().Error(err)
	s.Equal(StepReviewGate, FailedStep(err))

	var blocked *review.BlockedError
	s.Require().ErrorAs(err, &blocked)
	keys := make([]string, 0, len(blocked.Issues))
	for _, i := range blocked.Issues {
		keys = append(keys, i.Key)
	}
	s.ElementsMatch([]string{"first_name", "credentials"}, keys)

	s.Zero(s.staff.callCount("PatchStaff"))
	s.Zero(s.staff.callCount("AddDocument"))
	s.Zero(s.staff.callCount("AddCredential"))
	s.Equal("DRAFT", s.staff.snapshot(staffID).OnboardingStatus)
}

func (s *FinalizeSuite) TestUnknownStaffRecord() {
	s.Require().NoError(s.drafts.Set(s.ctx, "STF-404", clinicalDraft()))

	_, err := s.svc.Finalize(s.ctx, "STF-404")
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
	s.Contains(err.Error(), "Restart the onboarding wizard")
}

func (s *FinalizeSuite) TestMissingDraft() {
	s.Require().NoError(s.drafts.InMemoryStore.Delete(s.ctx, staffID))

	_, err := s.svc.Finalize(s.ctx, staffID)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
	s.Equal(StepLoad, FailedStep(err))
}

func (s *FinalizeSuite) TestBlankDraftID() {
	_, err := s.svc.Finalize(s.ctx, "   ")
	s.True(dErrors.Is(err, dErrors.CodeBadRequest))
}

func (s *FinalizeSuite) TestConcurrentRunIsRejected() {
	lease, err := s.locker.Obtain(s.ctx, staffID, time.Minute)
	s.Require().NoError(err)

	_, err = s.svc.Finalize(s.ctx, staffID)
	s.True(dErrors.Is(err, dErrors.CodeConflict))
	s.Zero(s.staff.callCount("GetStaff"))

	s.Require().NoError(lease.Release(s.ctx))
	_, err = s.svc.Finalize(s.ctx, staffID)
	s.NoError(err)
}

func (s *FinalizeSuite) TestLockIsReleasedAfterFailure() {
	s.staff.failAfter("PatchStaff", 0, errors.New("boom"))
	_, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().Error(err)

	lease, err := s.locker.Obtain(s.ctx, staffID, time.Minute)
	s.Require().NoError(err)
	s.NoError(lease.Release(s.ctx))
}

// =============================================================================
// System access
// =============================================================================

func (s *FinalizeSuite) TestAccountLinkedOutOfBandIsNotProvisioned() {
	// an earlier run provisioned the account but failed before cleanup
	s.staff.mu.Lock()
	s.staff.profiles[staffID].UserID = "user-existing"
	s.staff.mu.Unlock()

	res, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().NoError(err)
	s.Equal(access.ActionNone, res.Access.Action)
	s.Equal(access.ReasonAlreadyLinked, res.Access.Reason)
	s.Zero(s.staff.callCount("ProvisionUser"))
}

func (s *FinalizeSuite) TestLinkExistingByEmail() {
	s.staff.users = []models.UserAccount{
		{ID: "user-other", Email: "x.asha.rao@hospital.org"},
		{ID: "user-7", Email: "asha.rao@hospital.org"},
	}
	doc := clinicalDraft()
	doc["system_access"] = map[string]any{
		"enabled": true,
		"mode":    "link_existing",
		"email":   "ASHA.RAO@hospital.org",
	}
	s.Require().NoError(s.drafts.Set(s.ctx, staffID, doc))

	res, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().NoError(err)
	s.Equal(access.ActionLink, res.Access.Action)
	s.Equal("user-7", res.Access.UserID)
	s.Equal("user-7", s.staff.snapshot(staffID).UserID)
}

func (s *FinalizeSuite) TestProvisionWithoutRoleFails() {
	doc := clinicalDraft()
	doc["system_access"] = map[string]any{"enabled": true, "mode": "CREATE_NEW"}
	s.Require().NoError(s.drafts.Set(s.ctx, staffID, doc))

	_, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().Error(err)
	s.Equal(StepSystemAccess, FailedStep(err))
	s.True(dErrors.Is(err, dErrors.CodePrecondition))

	// everything before access already converged
	p := s.staff.snapshot(staffID)
	s.Len(p.Credentials, 2)
	s.Nil(p.User)
}

func (s *FinalizeSuite) TestAccessDisabled() {
	doc := clinicalDraft()
	doc["system_access"] = map[string]any{"enabled": false, "mode": "CREATE_NEW", "primary_role_code": "DOCTOR"}
	s.Require().NoError(s.drafts.Set(s.ctx, staffID, doc))

	res, err := s.svc.Finalize(s.ctx, staffID)
	s.Require().NoError(err)
	s.Equal(access.ActionNone, res.Access.Action)
	s.Equal(access.ReasonDisabled, res.Access.Reason)
}

func (s *FinalizeSuite) TestFinalizeRecordsStepSpans() {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	svc, err := New(s.staff, s.drafts, WithTracer(provider.Tracer("test")))
	s.Require().NoError(err)

	s.staff.failAfter("AddAssignment", 0, errors.New("boom"))
	_, err = svc.Finalize(s.ctx, staffID)
	s.Require().Error(err)

	var names []string
	failed := ""
	for _, span := range recorder.Ended() {
		names = append(names, span.Name())
		if span.Status().Code == codes.Error && span.Name() != "onboarding.finalize" {
			failed = span.Name()
		}
	}
	s.Contains(names, "onboarding.finalize")
	s.Contains(names, "onboarding.finalize."+StepCredentials)
	s.NotContains(names, "onboarding.finalize."+StepSystemAccess)
	s.Equal("onboarding.finalize."+StepAssignments, failed)
}
