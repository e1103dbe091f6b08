package commands_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/order"
	"mealbot/internal/core/domain/model/queue"
	"mealbot/internal/core/domain/model/rider"
	"mealbot/internal/core/domain/services"
	"mealbot/internal/core/ports"
	"mealbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newPendingEntry(t *testing.T, orderID kernel.OrderID, buyer kernel.Phone) *queue.Entry {
	t.Helper()
	entry, err := queue.NewEntry(orderID, buyer, "Vegan Bowl", "Britam Tower", mustMoney(t, 320), time.Now())
	require.NoError(t, err)
	return entry
}

func newPaidOrder(t *testing.T, orderID kernel.OrderID, buyer kernel.Phone) *order.Order {
	t.Helper()
	o, err := order.NewOrder(orderID, buyer, "3", "Vegan Bowl", mustMoney(t, 320), "Britam Tower", time.Now())
	require.NoError(t, err)
	require.NoError(t, o.ConfirmPayment(time.Now()))
	return o
}

func TestAttemptBookingCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewOrderID()
	riderPhone := mustPhone(t, "+254700000001")
	buyer := mustPhone(t, "+254712345678")
	cmd, err := commands.NewAttemptBookingCommand(orderID, riderPhone)
	require.NoError(t, err)

	entry := newPendingEntry(t, orderID, buyer)
	paidOrder := newPaidOrder(t, orderID, buyer)

	orderRepo := new(MockOrderRepository)
	queueRepo := new(MockQueueRepository)
	bookingRepo := new(MockBookingRepository)
	riderRepo := new(MockRiderRepository)
	uow := new(MockBookingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Exists", mock.Anything, riderPhone).Return(true, nil).Once(),
		uow.On("QueueRepository").Return(queueRepo).Once(),
		queueRepo.On("Get", mock.Anything, orderID).Return(entry, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(paidOrder, nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Add", mock.Anything, mock.AnythingOfType("*booking.Booking")).Return(nil).Once(),
		queueRepo.On("Update", mock.Anything, entry).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, paidOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	locks := services.NewOrderLockRegistry(0)
	h := commands.NewAttemptBookingCommandHandler(factory, locks, booking.DefaultRiderCutBps)

	booked, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, booked)
	assert.Equal(t, booking.Booked, booked.Status())
	assert.Equal(t, int64(48), booked.PaymentHold().Amount().Shillings(),
		"earnings are the 15 percent cut of KES 320")
	assert.False(t, entry.IsBookable())
	assert.Equal(t, order.AssignedToRider, paidOrder.Status())
	assert.Equal(t, 0, locks.Len(), "lock must be released after the attempt")

	uow.AssertExpectations(t)
	queueRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	bookingRepo.AssertExpectations(t)
	riderRepo.AssertExpectations(t)
}

func TestAttemptBookingCommandHandler_Handle_LockHeld(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewOrderID()
	cmd, err := commands.NewAttemptBookingCommand(orderID, mustPhone(t, "+254700000002"))
	require.NoError(t, err)

	locks := services.NewOrderLockRegistry(0)
	require.True(t, locks.TryAcquire(orderID, mustPhone(t, "+254700000001")))

	factory := new(MockBookingUoWFactory)
	h := commands.NewAttemptBookingCommandHandler(factory, locks, booking.DefaultRiderCutBps)

	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderAlreadyBeingBooked)
	factory.AssertNotCalled(t, "Create")
}

func TestAttemptBookingCommandHandler_Handle_RiderNotRegistered(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewOrderID()
	riderPhone := mustPhone(t, "+254700000001")
	cmd, err := commands.NewAttemptBookingCommand(orderID, riderPhone)
	require.NoError(t, err)

	riderRepo := new(MockRiderRepository)
	uow := new(MockBookingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Exists", mock.Anything, riderPhone).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	locks := services.NewOrderLockRegistry(0)
	h := commands.NewAttemptBookingCommandHandler(factory, locks, booking.DefaultRiderCutBps)

	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrRiderNotRegistered)
	assert.Equal(t, 0, locks.Len())
}

func TestAttemptBookingCommandHandler_Handle_OrderNotAvailable(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewOrderID()
	riderPhone := mustPhone(t, "+254700000001")
	buyer := mustPhone(t, "+254712345678")

	t.Run("no queue entry", func(t *testing.T) {
		cmd, err := commands.NewAttemptBookingCommand(orderID, riderPhone)
		require.NoError(t, err)

		queueRepo := new(MockQueueRepository)
		riderRepo := new(MockRiderRepository)
		uow := new(MockBookingUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("RiderRepository").Return(riderRepo).Once(),
			riderRepo.On("Exists", mock.Anything, riderPhone).Return(true, nil).Once(),
			uow.On("QueueRepository").Return(queueRepo).Once(),
			queueRepo.On("Get", mock.Anything, orderID).
				Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockBookingUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAttemptBookingCommandHandler(factory, services.NewOrderLockRegistry(0), booking.DefaultRiderCutBps)

		_, err = h.Handle(ctx, cmd)
		require.ErrorIs(t, err, commands.ErrOrderNotAvailable)
	})

	t.Run("entry already booked", func(t *testing.T) {
		cmd, err := commands.NewAttemptBookingCommand(orderID, riderPhone)
		require.NoError(t, err)

		entry := newPendingEntry(t, orderID, buyer)
		require.NoError(t, entry.MarkBooked(mustPhone(t, "+254700000009"), kernel.NewBookingID()))

		queueRepo := new(MockQueueRepository)
		riderRepo := new(MockRiderRepository)
		uow := new(MockBookingUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("RiderRepository").Return(riderRepo).Once(),
			riderRepo.On("Exists", mock.Anything, riderPhone).Return(true, nil).Once(),
			uow.On("QueueRepository").Return(queueRepo).Once(),
			queueRepo.On("Get", mock.Anything, orderID).Return(entry, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockBookingUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAttemptBookingCommandHandler(factory, services.NewOrderLockRegistry(0), booking.DefaultRiderCutBps)

		_, err = h.Handle(ctx, cmd)
		require.ErrorIs(t, err, commands.ErrOrderNotAvailable)
	})
}

func TestAttemptBookingCommandHandler_Handle_GuardedQueueUpdateLoses(t *testing.T) {
	// A duplicate claim can slip past the lock registry: the same rider
	// sending "book" twice re-acquires their own lock. The status guard on
	// the queue update is the backstop; its not-found result must surface
	// as the order being unavailable, not as an internal error.
	ctx := t.Context()
	orderID := kernel.NewOrderID()
	riderPhone := mustPhone(t, "+254700000001")
	buyer := mustPhone(t, "+254712345678")
	cmd, err := commands.NewAttemptBookingCommand(orderID, riderPhone)
	require.NoError(t, err)

	entry := newPendingEntry(t, orderID, buyer)
	paidOrder := newPaidOrder(t, orderID, buyer)

	orderRepo := new(MockOrderRepository)
	queueRepo := new(MockQueueRepository)
	bookingRepo := new(MockBookingRepository)
	riderRepo := new(MockRiderRepository)
	uow := new(MockBookingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		riderRepo.On("Exists", mock.Anything, riderPhone).Return(true, nil).Once(),
		uow.On("QueueRepository").Return(queueRepo).Once(),
		queueRepo.On("Get", mock.Anything, orderID).Return(entry, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(paidOrder, nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Add", mock.Anything, mock.AnythingOfType("*booking.Booking")).Return(nil).Once(),
		queueRepo.On("Update", mock.Anything, entry).
			Return(errs.NewObjectNotFoundError("queueEntry", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	locks := services.NewOrderLockRegistry(0)
	h := commands.NewAttemptBookingCommandHandler(factory, locks, booking.DefaultRiderCutBps)

	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotAvailable)
	assert.Equal(t, 0, locks.Len(), "lock must be released after the lost claim")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

// fakeBookingUoW backs the concurrency test with real shared state so racing
// handlers observe each other's committed writes.
type fakeBookingUoW struct {
	entry  *queue.Entry
	order  *order.Order
	booked *int64
}

func (f fakeBookingUoW) Begin(context.Context) error    { return nil }
func (f fakeBookingUoW) Commit(context.Context) error   { return nil }
func (f fakeBookingUoW) Rollback(context.Context) error { return nil }

func (f fakeBookingUoW) OrderRepository() ports.OrderRepository     { return fakeOrderRepo{f} }
func (f fakeBookingUoW) QueueRepository() ports.QueueRepository     { return fakeQueueRepo{f} }
func (f fakeBookingUoW) BookingRepository() ports.BookingRepository { return fakeBookingRepo{f} }
func (f fakeBookingUoW) RiderRepository() ports.RiderRepository     { return fakeRiderRepo{} }

type fakeOrderRepo struct{ uow fakeBookingUoW }

func (r fakeOrderRepo) Add(context.Context, *order.Order) error    { return nil }
func (r fakeOrderRepo) Update(context.Context, *order.Order) error { return nil }
func (r fakeOrderRepo) Get(context.Context, kernel.OrderID) (*order.Order, error) {
	return r.uow.order, nil
}

type fakeQueueRepo struct{ uow fakeBookingUoW }

func (r fakeQueueRepo) Add(context.Context, *queue.Entry) error    { return nil }
func (r fakeQueueRepo) Update(context.Context, *queue.Entry) error { return nil }
func (r fakeQueueRepo) Get(context.Context, kernel.OrderID) (*queue.Entry, error) {
	return r.uow.entry, nil
}
func (r fakeQueueRepo) GetAllPending(context.Context) ([]*queue.Entry, error) { return nil, nil }

type fakeBookingRepo struct{ uow fakeBookingUoW }

func (r fakeBookingRepo) Add(context.Context, *booking.Booking) error {
	atomic.AddInt64(r.uow.booked, 1)
	return nil
}
func (r fakeBookingRepo) Update(context.Context, *booking.Booking) error { return nil }
func (r fakeBookingRepo) Get(context.Context, kernel.BookingID) (*booking.Booking, error) {
	return nil, errs.NewObjectNotFoundError("bookingID", nil)
}
func (r fakeBookingRepo) GetActiveByRider(context.Context, kernel.Phone) ([]*booking.Booking, error) {
	return nil, nil
}

type fakeRiderRepo struct{}

func (fakeRiderRepo) Add(context.Context, *rider.Rider) error    { return nil }
func (fakeRiderRepo) Update(context.Context, *rider.Rider) error { return nil }
func (fakeRiderRepo) Get(context.Context, kernel.Phone) (*rider.Rider, error) {
	return nil, errs.NewObjectNotFoundError("phone", nil)
}
func (fakeRiderRepo) Exists(context.Context, kernel.Phone) (bool, error) { return true, nil }

type fakeBookingUoWFactory struct{ uow fakeBookingUoW }

func (f fakeBookingUoWFactory) Create() commands.BookingUoW { return f.uow }

func TestAttemptBookingCommandHandler_Handle_ConcurrentAttemptsYieldOneWinner(t *testing.T) {
	const riders = 20

	ctx := t.Context()
	orderID := kernel.NewOrderID()
	buyer := mustPhone(t, "+254712345678")

	var booked int64
	uow := fakeBookingUoW{
		entry:  newPendingEntry(t, orderID, buyer),
		order:  newPaidOrder(t, orderID, buyer),
		booked: &booked,
	}

	h := commands.NewAttemptBookingCommandHandler(
		fakeBookingUoWFactory{uow: uow},
		services.NewOrderLockRegistry(0),
		booking.DefaultRiderCutBps,
	)

	var (
		wins  int64
		start = make(chan struct{})
		group errgroup.Group
	)
	for i := 0; i < riders; i++ {
		phone := mustPhone(t, fmt.Sprintf("+2547110000%02d", i))
		group.Go(func() error {
			<-start
			cmd, err := commands.NewAttemptBookingCommand(orderID, phone)
			if err != nil {
				return err
			}
			_, err = h.Handle(ctx, cmd)
			switch {
			case err == nil:
				atomic.AddInt64(&wins, 1)
				return nil
			case errors.Is(err, commands.ErrOrderAlreadyBeingBooked),
				errors.Is(err, commands.ErrOrderNotAvailable):
				return nil
			default:
				return err
			}
		})
	}

	close(start)
	require.NoError(t, group.Wait())

	assert.Equal(t, int64(1), wins, "exactly one rider must win the claim")
	assert.Equal(t, int64(1), booked, "exactly one booking must be persisted")
	assert.False(t, uow.entry.IsBookable())
}
