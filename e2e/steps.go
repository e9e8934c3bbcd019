package e2e

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"

	"carehub/e2e/steps/onboarding"
)

// RegisterSteps registers all step definitions from modular packages.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.Reset()
		return c, nil
	})

	ctx.Step(`^the response status should be (\d+)$`, func(want int) error {
		if tc.Status() != want {
			return fmt.Errorf("expected status %d, got %d: %s", want, tc.Status(), tc.Body())
		}
		return nil
	})
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, func(path, want string) error {
		got, err := tc.Field(path)
		if err != nil {
			return err
		}
		if s := stringify(got); s != want {
			return fmt.Errorf("expected %s to be %q, got %q", path, want, s)
		}
		return nil
	})

	onboarding.RegisterSteps(ctx, tc)
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
