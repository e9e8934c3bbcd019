// Package drafts persists onboarding wizard drafts keyed by draft id.
//
// Every backend stores the whole document as JSON under a fixed key prefix
// plus the draft id, returns sentinel.ErrNotFound for unknown ids, and hands
// out copies so callers can never mutate stored state in place.
package drafts

import (
	"encoding/json"
	"fmt"

	"carehub/internal/onboarding/draft"
)

// DefaultKeyPrefix namespaces draft keys in shared backends.
const DefaultKeyPrefix = "staff-onboarding-draft:"

func key(prefix, draftID string) string {
	return prefix + draftID
}

func encode(doc draft.Document) ([]byte, error) {
	if doc == nil {
		doc = draft.Document{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	return data, nil
}
