package services

import (
	"sync"
	"time"

	"mealbot/internal/core/domain/model/kernel"
)

// DefaultLockTTL is how long an acquired order lock is honored before it is
// considered stale and may be taken over. A booking attempt finishes in well
// under a second; the TTL only matters if a holder crashes mid-attempt.
const DefaultLockTTL = 30 * time.Second

// OrderLockRegistry serializes booking attempts per order id. A rider must
// acquire the order's lock before touching queue or booking state; the
// losing rider of a race gets an immediate refusal rather than blocking.
//
// Key properties:
//   - TryAcquire is non-blocking: it either takes the lock or reports false
//   - Locks are per order id; attempts on different orders never contend
//   - Re-acquiring by the current holder succeeds (the attempt is retried)
//   - A lock held past its TTL is stale and can be taken by another rider
//
// The registry is process-local. Exactly-one-winner across processes is
// enforced by the database transaction; the registry exists to resolve the
// race cheaply and give the loser a friendly answer without a round trip.
type OrderLockRegistry struct {
	mu    sync.Mutex
	ttl   time.Duration
	locks map[string]lockEntry
	now   func() time.Time
}

type lockEntry struct {
	holder     kernel.Phone
	acquiredAt time.Time
}

// NewOrderLockRegistry creates a registry with the given staleness TTL.
// A non-positive ttl falls back to DefaultLockTTL.
func NewOrderLockRegistry(ttl time.Duration) *OrderLockRegistry {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &OrderLockRegistry{
		ttl:   ttl,
		locks: map[string]lockEntry{},
		now:   time.Now,
	}
}

// TryAcquire attempts to take the lock for orderID on behalf of holder.
// It returns true if the lock was acquired (or already held by the same
// holder), false if another rider currently holds a fresh lock.
func (r *OrderLockRegistry) TryAcquire(orderID kernel.OrderID, holder kernel.Phone) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	key := orderID.String()

	if entry, ok := r.locks[key]; ok {
		sameHolder := entry.holder.IsEqual(holder)
		stale := now.Sub(entry.acquiredAt) > r.ttl
		if !sameHolder && !stale {
			return false
		}
	}

	r.locks[key] = lockEntry{holder: holder, acquiredAt: now}
	return true
}

// Release frees the lock for orderID if holder owns it. Releasing a lock
// that is not held, or held by someone else, is a no-op.
func (r *OrderLockRegistry) Release(orderID kernel.OrderID, holder kernel.Phone) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := orderID.String()
	if entry, ok := r.locks[key]; ok && entry.holder.IsEqual(holder) {
		delete(r.locks, key)
	}
}

// Len returns the number of currently held locks. Used by tests and metrics.
func (r *OrderLockRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}
