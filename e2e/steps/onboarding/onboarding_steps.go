package onboarding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext defines the methods needed from the main test context.
type TestContext interface {
	Do(ctx context.Context, method, path string, body any) error
	Field(path string) (any, error)
	DraftID() string
}

// RegisterSteps registers onboarding draft, review and finalize steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &onboardingSteps{tc: tc}

	ctx.Step(`^an empty onboarding draft$`, steps.emptyDraft)
	ctx.Step(`^I save the "([^"]*)" section with "([^"]*)" set to "([^"]*)"$`, steps.saveSectionField)
	ctx.Step(`^I save the employee id "([^"]*)"$`, steps.saveEmployeeID)
	ctx.Step(`^I load the draft$`, steps.loadDraft)
	ctx.Step(`^I delete the draft$`, steps.deleteDraft)
	ctx.Step(`^I review the draft$`, steps.review)
	ctx.Step(`^I finalize the draft$`, steps.finalize)
	ctx.Step(`^the review should list the blocking issue "([^"]*)"$`, steps.reviewListsIssue)
	ctx.Step(`^the finalize response should list the issue "([^"]*)"$`, steps.finalizeListsIssue)
}

type onboardingSteps struct {
	tc TestContext
}

func (s *onboardingSteps) path(suffix string) string {
	return "/staff/onboarding/" + s.tc.DraftID() + suffix
}

func (s *onboardingSteps) emptyDraft(ctx context.Context) error {
	return s.tc.Do(ctx, http.MethodPut, s.path("/draft"), map[string]any{})
}

func (s *onboardingSteps) saveSectionField(ctx context.Context, section, field, value string) error {
	return s.tc.Do(ctx, http.MethodPatch, s.path("/draft"), map[string]any{
		section: map[string]any{field: value},
	})
}

func (s *onboardingSteps) saveEmployeeID(ctx context.Context, id string) error {
	return s.tc.Do(ctx, http.MethodPatch, s.path("/draft"), map[string]any{"employee_id": id})
}

func (s *onboardingSteps) loadDraft(ctx context.Context) error {
	return s.tc.Do(ctx, http.MethodGet, s.path("/draft"), nil)
}

func (s *onboardingSteps) deleteDraft(ctx context.Context) error {
	return s.tc.Do(ctx, http.MethodDelete, s.path("/draft"), nil)
}

func (s *onboardingSteps) review(ctx context.Context) error {
	return s.tc.Do(ctx, http.MethodGet, s.path("/review"), nil)
}

func (s *onboardingSteps) finalize(ctx context.Context) error {
	return s.tc.Do(ctx, http.MethodPost, s.path("/finalize"), nil)
}

func (s *onboardingSteps) reviewListsIssue(_ context.Context, key string) error {
	return s.issueListed(key, true)
}

func (s *onboardingSteps) finalizeListsIssue(_ context.Context, key string) error {
	return s.issueListed(key, false)
}

func (s *onboardingSteps) issueListed(key string, blockingOnly bool) error {
	raw, err := s.tc.Field("issues")
	if err != nil {
		return err
	}
	issues, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("issues is not a list")
	}
	for _, item := range issues {
		issue, ok := item.(map[string]any)
		if !ok || issue["key"] != key {
			continue
		}
		if blockingOnly && issue["severity"] != "error" {
			return fmt.Errorf("issue %q is not blocking", key)
		}
		return nil
	}
	return fmt.Errorf("issue %q not listed", key)
}
