package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repositories bound to the transaction.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Rolling back after a commit is a no-op.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// QueueRepository returns a QueueRepository bound to the current transaction.
	QueueRepository() QueueRepository

	// BookingRepository returns a BookingRepository bound to the current transaction.
	BookingRepository() BookingRepository

	// RiderRepository returns a RiderRepository bound to the current transaction.
	RiderRepository() RiderRepository

	// SessionRepository returns a SessionRepository bound to the current transaction.
	SessionRepository() SessionRepository
}
