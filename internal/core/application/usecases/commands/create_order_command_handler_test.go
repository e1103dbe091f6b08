package commands_test

import (
	"errors"
	"testing"

	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, promoCode string) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewOrderID(),
		mustPhone(t, "+254712345678"),
		"3",
		"Vegan Bowl",
		mustMoney(t, 320),
		"Britam Tower",
		promoCode,
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, "")

	uow := new(MockBookingUoW)
	orderRepo := new(MockOrderRepository)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.PendingPayment && o.MealName() == "Vegan Bowl"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_PromoGrantsFreeDelivery(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, "FREEDEL")

	uow := new(MockBookingUoW)
	orderRepo := new(MockOrderRepository)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.FreeDelivery() && o.PromoCode() == "FREEDEL"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, "")

	uow := new(MockBookingUoW)
	orderRepo := new(MockOrderRepository)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}
