package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"carehub/internal/onboarding/draft"
	"carehub/internal/onboarding/models"
	"carehub/internal/onboarding/review"
	"carehub/internal/staffapi"
	dErrors "carehub/pkg/domain-errors"
	"carehub/pkg/platform/sentinel"
)

// ReviewResult is what the Review page renders.
type ReviewResult struct {
	DraftID  string               `json:"draft_id"`
	Issues   []review.Issue       `json:"issues"`
	Blocking bool                 `json:"blocking"`
	Staff    *models.StaffProfile `json:"staff"`
}

// Review loads the draft and the staff record and validates the draft.
// Validation issues are data; only loading failures are errors.
func (s *Service) Review(ctx context.Context, draftID string) (*ReviewResult, error) {
	draftID, err := normalizeID(draftID)
	if err != nil {
		return nil, err
	}
	doc, profile, err := s.load(ctx, draftID)
	if err != nil {
		return nil, err
	}
	issues := review.Validate(doc)
	for _, i := range review.BlockingOnly(issues) {
		s.metrics.IncrementBlockingIssue(i.Key)
	}
	return &ReviewResult{
		DraftID:  draftID,
		Issues:   issues,
		Blocking: review.HasBlocking(issues),
		Staff:    profile,
	}, nil
}

// load reads the draft and the staff record concurrently.
func (s *Service) load(ctx context.Context, draftID string) (draft.Document, *models.StaffProfile, error) {
	var (
		doc     draft.Document
		profile *models.StaffProfile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.drafts.Get(gctx, draftID)
		if err != nil {
			return draftStoreError(err, "failed to load draft")
		}
		doc = d
		return nil
	})
	g.Go(func() error {
		p, err := s.staff.GetStaff(gctx, draftID)
		if err != nil {
			return profileError(err)
		}
		profile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return doc, profile, nil
}

func profileError(err error) error {
	if staffapi.IsNotFound(err) || errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "No staff record matches this onboarding link. "+msgRestartWizard)
	}
	return upstreamError(err, "Could not load the staff record. Please retry.")
}
