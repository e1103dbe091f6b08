package ports

import (
	"context"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for registered riders.
type RiderRepository interface {
	// Add persists a newly registered rider.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by phone number.
	// Returns errs.ErrObjectNotFound when the phone is not registered.
	Get(ctx context.Context, phone kernel.Phone) (*rider.Rider, error)

	// Exists reports whether a rider is registered under the phone number.
	Exists(ctx context.Context, phone kernel.Phone) (bool, error)
}
