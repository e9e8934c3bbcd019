// Package e2e drives a running carehub server through its HTTP API with
// godog scenarios. Set CAREHUB_E2E_BASE_URL to run them.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext holds the last response of a scenario.
type TestContext struct {
	BaseURL  string
	StaffID  string
	client   *http.Client
	status   int
	body     []byte
	response map[string]any
}

// NewTestContext builds a context against baseURL.
func NewTestContext(baseURL, staffID string) *TestContext {
	return &TestContext{
		BaseURL: strings.TrimRight(baseURL, "/"),
		StaffID: staffID,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (tc *TestContext) Reset() {
	tc.status = 0
	tc.body = nil
	tc.response = nil
}

func (tc *TestContext) DraftID() string {
	return tc.StaffID
}

func (tc *TestContext) Do(ctx context.Context, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, tc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Actor-ID", "e2e")

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.body, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.response = nil
	if len(bytes.TrimSpace(tc.body)) > 0 {
		var parsed map[string]any
		if json.Unmarshal(tc.body, &parsed) == nil {
			tc.response = parsed
		}
	}
	return nil
}

func (tc *TestContext) Status() int {
	return tc.status
}

// Field walks a dotted path through the last JSON response.
func (tc *TestContext) Field(path string) (any, error) {
	var cur any = tc.response
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q not found in %s", path, tc.body)
		}
		cur, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in %s", path, tc.body)
		}
	}
	return cur, nil
}

func (tc *TestContext) Body() string {
	return string(tc.body)
}
