package publisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "carehub/pkg/platform/audit"
	"carehub/pkg/platform/audit/store/memory"
	"carehub/pkg/requestcontext"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type failingStore struct {
	calls atomic.Int32
}

func (s *failingStore) Append(context.Context, audit.Event) error {
	s.calls.Add(1)
	return errors.New("store down")
}

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithLogger(discard))
	defer pub.Close()

	ctx := requestcontext.WithRequestID(context.Background(), "req-1")
	ctx = requestcontext.WithActor(ctx, "op-7")

	err := pub.Emit(ctx, audit.Event{
		Subject: "S1",
		Action:  string(audit.EventCredentialAdded),
	})
	require.NoError(t, err)

	events, err := store.ListBySubject(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventCredentialAdded), events[0].Action)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, "op-7", events[0].ActorID)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10), WithLogger(discard))

	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		Subject: "S1",
		Action:  string(audit.EventAccessProvisioned),
	}))

	// Close drains the buffer.
	pub.Close()

	events, err := store.ListBySubject(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
}

func TestPublisher_StoreFailureIsSwallowed(t *testing.T) {
	store := &failingStore{}
	pub := NewPublisher(store, WithLogger(discard))

	err := pub.Emit(context.Background(), audit.Event{Subject: "S1", Action: "x"})
	assert.NoError(t, err)
	assert.Equal(t, int32(1), store.calls.Load())
}

func TestPublisher_CircuitBreakerStopsCalls(t *testing.T) {
	store := &failingStore{}
	pub := NewPublisher(store,
		WithLogger(discard),
		WithCircuitBreaker(NewCircuitBreaker(2, time.Hour)),
	)

	for range 5 {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{Subject: "S1", Action: "x"}))
	}
	assert.Equal(t, int32(2), store.calls.Load())
}

func TestPublisher_ConcurrentEmit(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100), WithLogger(discard))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pub.Emit(context.Background(), audit.Event{Subject: "S1", Action: "x"})
		}()
	}
	wg.Wait()
	pub.Close()

	events, err := store.ListBySubject(context.Background(), "S1")
	require.NoError(t, err)
	assert.Len(t, events, 20)
}

func TestPublisher_CloseIsIdempotent(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(1))
	pub.Close()
	pub.Close()
}

func TestCircuitBreaker(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(2, time.Minute)
	cb.now = func() time.Time { return now }

	assert.True(t, cb.Allow())
	cb.RecordFailure()
	assert.False(t, cb.IsOpen())
	cb.RecordFailure()
	assert.True(t, cb.IsOpen())
	assert.False(t, cb.Allow())

	now = now.Add(2 * time.Minute)
	assert.True(t, cb.Allow(), "half-open after cooldown")
	assert.False(t, cb.IsOpen())

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	assert.False(t, cb.IsOpen(), "success resets the failure count")
}
