// Package lock serializes finalize runs per draft.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"carehub/pkg/platform/sentinel"
)

const keyPrefix = "staff-onboarding-finalize:"

// Lease is a held lock.
type Lease interface {
	Release(ctx context.Context) error
}

// Locker obtains per-draft leases. Obtain fails with sentinel.ErrConflict
// when another holder has the lease.
type Locker interface {
	Obtain(ctx context.Context, draftID string, ttl time.Duration) (Lease, error)
}

// RedisLocker uses redislock so leases hold across replicas.
type RedisLocker struct {
	client *redislock.Client
}

// NewRedis constructs a RedisLocker on an existing go-redis client.
func NewRedis(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(client)}
}

func (l *RedisLocker) Obtain(ctx context.Context, draftID string, ttl time.Duration) (Lease, error) {
	lk, err := l.client.Obtain(ctx, keyPrefix+draftID, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("finalize lock for %s: %w", draftID, sentinel.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("finalize lock for %s: %w", draftID, err)
	}
	return redisLease{lk}, nil
}

type redisLease struct {
	lock *redislock.Lock
}

// Release tolerates a lease that already expired.
func (r redisLease) Release(ctx context.Context) error {
	err := r.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return nil
	}
	return err
}

// LocalLocker holds leases in process. Expired leases are reclaimed on the
// next Obtain.
type LocalLocker struct {
	mu     sync.Mutex
	held   map[string]localEntry
	now    func() time.Time
	tokens uint64
}

type localEntry struct {
	token   uint64
	expires time.Time
}

// NewLocal constructs an in-process Locker.
func NewLocal() *LocalLocker {
	return &LocalLocker{held: make(map[string]localEntry), now: time.Now}
}

func (l *LocalLocker) Obtain(_ context.Context, draftID string, ttl time.Duration) (Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if e, ok := l.held[draftID]; ok && (e.expires.IsZero() || now.Before(e.expires)) {
		return nil, fmt.Errorf("finalize lock for %s: %w", draftID, sentinel.ErrConflict)
	}
	l.tokens++
	entry := localEntry{token: l.tokens}
	if ttl > 0 {
		entry.expires = now.Add(ttl)
	}
	l.held[draftID] = entry
	return &localLease{locker: l, draftID: draftID, token: entry.token}, nil
}

type localLease struct {
	locker  *LocalLocker
	draftID string
	token   uint64
}

// Release only removes the entry it created.
func (r *localLease) Release(context.Context) error {
	r.locker.mu.Lock()
	defer r.locker.mu.Unlock()
	if e, ok := r.locker.held[r.draftID]; ok && e.token == r.token {
		delete(r.locker.held, r.draftID)
	}
	return nil
}
