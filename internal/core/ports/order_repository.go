// Package ports defines the outbound contracts of the core: repository
// interfaces for each aggregate, the unit of work boundary, and the
// messenger used to reach buyers and riders over WhatsApp.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)
}
