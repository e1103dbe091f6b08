// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"mealbot/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// QueueRepoFactory provides access to the rider queue repository within a transaction.
	QueueRepoFactory interface {
		QueueRepository() ports.QueueRepository
	}

	// BookingRepoFactory provides access to the booking repository within a transaction.
	BookingRepoFactory interface {
		BookingRepository() ports.BookingRepository
	}

	// RiderRepoFactory provides access to the rider repository within a transaction.
	RiderRepoFactory interface {
		RiderRepository() ports.RiderRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PaymentUoW manages transactions for payment confirmation, which moves
	// the order forward and publishes it to the rider queue atomically.
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		QueueRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// RiderUoW manages transactions for rider registration.
	RiderUoW interface {
		TxManager
		RiderRepoFactory
	}

	// RiderUoWFactory creates new rider unit of work instances.
	RiderUoWFactory interface {
		Create() RiderUoW
	}

	// BookingUoW manages transactions spanning the booking workflow: the
	// order, its queue entry, the booking with its payment hold, and the
	// rider's totals all change together or not at all.
	//
	// Example:
	//
	//	uow := factory.Create()
	//	err := uow.Begin(ctx)
	//	defer uow.Rollback(ctx)
	//
	//	queueRepo := uow.QueueRepository()
	//	bookingRepo := uow.BookingRepository()
	//	// ... perform operations
	//
	//	err = uow.Commit(ctx)
	BookingUoW interface {
		TxManager
		OrderRepoFactory
		QueueRepoFactory
		BookingRepoFactory
		RiderRepoFactory
	}

	// BookingUoWFactory creates new booking unit of work instances.
	BookingUoWFactory interface {
		Create() BookingUoW
	}
)
