package drafts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carehub/internal/onboarding/draft"
	"carehub/pkg/platform/sentinel"
)

func TestInMemoryStore_GetMissing(t *testing.T) {
	store := NewInMemory()

	_, err := store.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestInMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	doc := draft.Document{
		"personal_details": map[string]any{"employee_id": "E-1", "first_name": "Ana"},
	}
	require.NoError(t, store.Set(ctx, "d1", doc))

	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "E-1", got.EmployeeID())

	require.NoError(t, store.Delete(ctx, "d1"))
	_, err = store.Get(ctx, "d1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	// deleting again is harmless
	assert.NoError(t, store.Delete(ctx, "d1"))
}

func TestInMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	doc := draft.Document{"personal_details": map[string]any{"first_name": "Ana"}}
	require.NoError(t, store.Set(ctx, "d1", doc))

	doc.RawSection("personal_details")["first_name"] = "Mutated"

	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	got.RawSection("personal_details")["first_name"] = "AlsoMutated"

	again, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Personal().String("first_name"))
}

func TestInMemoryStore_NilDocumentStoredAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	require.NoError(t, store.Set(ctx, "d1", nil))
	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			doc := draft.Document{"n": n}
			_ = store.Set(ctx, "shared", doc)
			_, _ = store.Get(ctx, "shared")
		}(i)
	}
	wg.Wait()

	_, err := store.Get(ctx, "shared")
	assert.NoError(t, err)
}
