package drafts

import (
	"context"
	"sync"

	"carehub/internal/onboarding/draft"
	"carehub/pkg/platform/sentinel"
)

// InMemoryStore keeps drafts in process. Documents are stored encoded so
// reads always return an independent copy.
type InMemoryStore struct {
	mu     sync.RWMutex
	prefix string
	docs   map[string][]byte
}

// NewInMemory constructs an empty in-memory draft store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{prefix: DefaultKeyPrefix, docs: make(map[string][]byte)}
}

func (s *InMemoryStore) Get(_ context.Context, draftID string) (draft.Document, error) {
	s.mu.RLock()
	data, ok := s.docs[key(s.prefix, draftID)]
	s.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return draft.Parse(data)
}

func (s *InMemoryStore) Set(_ context.Context, draftID string, doc draft.Document) error {
	data, err := encode(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key(s.prefix, draftID)] = data
	return nil
}

// Delete is a no-op for unknown ids.
func (s *InMemoryStore) Delete(_ context.Context, draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key(s.prefix, draftID))
	return nil
}

// Ping always succeeds.
func (s *InMemoryStore) Ping(context.Context) error {
	return nil
}
