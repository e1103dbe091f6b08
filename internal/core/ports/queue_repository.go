package ports

import (
	"context"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/queue"
)

// QueueRepository defines the persistence contract for rider queue entries.
// The queue is the board of paid orders riders pick claims from.
type QueueRepository interface {
	// Add persists a new queue entry.
	Add(ctx context.Context, entry *queue.Entry) error

	// Update persists changes to an existing queue entry.
	Update(ctx context.Context, entry *queue.Entry) error

	// Get retrieves the queue entry for an order.
	// Returns errs.ErrObjectNotFound when no such entry exists.
	Get(ctx context.Context, orderID kernel.OrderID) (*queue.Entry, error)

	// GetAllPending retrieves entries still awaiting a rider claim,
	// oldest first.
	GetAllPending(ctx context.Context) ([]*queue.Entry, error)
}
