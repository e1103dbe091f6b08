// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work maintains one database transaction across the
// repositories a command touches, so multi-aggregate changes (an order, its
// queue entry, a booking with its payment hold, the rider's totals) land
// together or not at all.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.BookingRepository().Add(ctx, booking); err != nil {
//	    return err
//	}
//	if err := uow.QueueRepository().Update(ctx, entry); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance carries its own transaction state; concurrent
// operations must use separate instances.
package postgres

import (
	"context"

	"mealbot/internal/adapters/out/postgres/bookingrepo"
	"mealbot/internal/adapters/out/postgres/orderrepo"
	"mealbot/internal/adapters/out/postgres/queuerepo"
	"mealbot/internal/adapters/out/postgres/riderrepo"
	"mealbot/internal/adapters/out/postgres/sessionrepo"
	"mealbot/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Kept for post-commit processing such as outbound notifications.
type trackedAggregate struct {
	ID        string
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. Each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided database connection is shared by all created
// instances; transactions are per instance.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations, implemented on GORM's transaction
// capabilities.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls on the same instance are safe and will not create nested
// transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Rolling back after a commit is a no-op, which lets handlers keep the
// usual `defer uow.Rollback(ctx)` pattern.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// QueueRepository returns a rider queue repository bound to the current
// transaction.
func (uow *GormUnitOfWork) QueueRepository() ports.QueueRepository {
	return queuerepo.NewGormQueueRepository(uow.conn(), uow)
}

// BookingRepository returns a booking repository bound to the current
// transaction.
func (uow *GormUnitOfWork) BookingRepository() ports.BookingRepository {
	return bookingrepo.NewGormBookingRepository(uow.conn(), uow)
}

// RiderRepository returns a rider repository bound to the current
// transaction.
func (uow *GormUnitOfWork) RiderRepository() ports.RiderRepository {
	return riderrepo.NewGormRiderRepository(uow.conn(), uow)
}

// SessionRepository returns a session repository bound to the current
// transaction.
func (uow *GormUnitOfWork) SessionRepository() ports.SessionRepository {
	return sessionrepo.NewGormSessionRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by repository implementations on every add or update.
func (uow *GormUnitOfWork) TrackAggregate(id string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
