package commands_test

import (
	"testing"
	"time"

	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBookedBooking(t *testing.T, riderPhone kernel.Phone) *booking.Booking {
	t.Helper()
	b, err := booking.NewBooking(
		kernel.NewBookingID(),
		kernel.NewOrderID(),
		riderPhone,
		mustPhone(t, "+254712345678"),
		"Vegan Bowl",
		"Britam Tower",
		mustMoney(t, 320),
		booking.DefaultRiderCutBps,
		time.Now(),
	)
	require.NoError(t, err)
	return b
}

func TestConfirmPickupCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	riderPhone := mustPhone(t, "+254700000001")
	b := newBookedBooking(t, riderPhone)
	cmd, err := commands.NewConfirmPickupCommand(b.ID(), riderPhone)
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	uow := new(MockBookingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Get", mock.Anything, b.ID()).Return(b, nil).Once(),
		bookingRepo.On("Update", mock.Anything, b).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmPickupCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, booking.InTransit, updated.Status())
	assert.NotNil(t, updated.PickedUpAt())
	bookingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmPickupCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	riderPhone := mustPhone(t, "+254700000001")
	bookingID := kernel.NewBookingID()
	cmd, err := commands.NewConfirmPickupCommand(bookingID, riderPhone)
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	uow := new(MockBookingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Get", mock.Anything, bookingID).
			Return(nil, errs.NewObjectNotFoundError("bookingID", bookingID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmPickupCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrBookingNotFound)
}

func TestConfirmPickupCommandHandler_Handle_NotOwned(t *testing.T) {
	ctx := t.Context()
	b := newBookedBooking(t, mustPhone(t, "+254700000001"))
	imposter := mustPhone(t, "+254700000002")
	cmd, err := commands.NewConfirmPickupCommand(b.ID(), imposter)
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	uow := new(MockBookingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Get", mock.Anything, b.ID()).Return(b, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmPickupCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBookingNotOwned)
	assert.Equal(t, booking.Booked, b.Status(), "booking must be untouched")
}
