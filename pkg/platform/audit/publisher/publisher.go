// Package publisher emits audit events best-effort: persistence failures are
// logged and counted, never returned to the business operation.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "carehub/pkg/platform/audit"
	"carehub/pkg/requestcontext"
)

// Publisher writes events to an audit.Store, synchronously by default or
// through a bounded buffer drained by one worker goroutine.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
	breaker *CircuitBreaker
	timeout time.Duration

	buffer chan audit.Event
	wg     sync.WaitGroup
	once   sync.Once
}

// Option configures the Publisher.
type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithCircuitBreaker replaces the default breaker (5 failures, 1 minute).
func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(p *Publisher) {
		if cb != nil {
			p.breaker = cb
		}
	}
}

// WithAsyncBuffer enables asynchronous delivery with the given capacity.
// Events arriving while the buffer is full are dropped.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.buffer = make(chan audit.Event, size)
		}
	}
}

// WithStoreTimeout bounds each store write in async mode.
func WithStoreTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewPublisher constructs a Publisher. Call Close to drain the async buffer.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:   store,
		logger:  slog.Default(),
		breaker: NewCircuitBreaker(5, time.Minute),
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit fills in id, category, timestamp and request correlation, then
// persists or enqueues the event. It always returns nil once the event has
// been accepted or deliberately dropped.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ActorID == "" {
		event.ActorID = requestcontext.Actor(ctx)
	}

	if p.buffer == nil {
		p.persist(ctx, event)
		return nil
	}

	select {
	case p.buffer <- event:
	default:
		p.metrics.incBufferDropped()
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"log_type", "audit",
			"action", event.Action,
			"subject", event.Subject,
		)
	}
	return nil
}

// Close stops accepting events and waits for the buffer to drain.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.buffer != nil {
			close(p.buffer)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.buffer {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		p.persist(ctx, event)
		cancel()
	}
}

func (p *Publisher) persist(ctx context.Context, event audit.Event) {
	if !p.breaker.Allow() {
		p.metrics.incCircuitBreakerDropped()
		return
	}
	if err := p.store.Append(ctx, event); err != nil {
		p.breaker.RecordFailure()
		p.metrics.incPersistFailures()
		p.metrics.setCircuitBreakerState(p.breaker.IsOpen())
		p.logger.ErrorContext(ctx, "failed to persist audit event",
			"log_type", "audit",
			"action", event.Action,
			"subject", event.Subject,
			"error", err,
		)
		return
	}
	p.breaker.RecordSuccess()
	p.metrics.setCircuitBreakerState(false)
	p.metrics.incPublished(string(event.Category))
}
