package commands_test

import (
	"context"
	"testing"

	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/order"
	"mealbot/internal/core/domain/model/queue"
	"mealbot/internal/core/domain/model/rider"
	"mealbot/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustPhone(t *testing.T, s string) kernel.Phone {
	t.Helper()
	phone, err := kernel.PhoneFromString(s)
	require.NoError(t, err)
	return phone
}

func mustMoney(t *testing.T, shillings int64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromShillings(shillings)
	require.NoError(t, err)
	return m
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockQueueRepository struct{ mock.Mock }

func (m *MockQueueRepository) Add(ctx context.Context, e *queue.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockQueueRepository) Update(ctx context.Context, e *queue.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockQueueRepository) Get(ctx context.Context, orderID kernel.OrderID) (*queue.Entry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queue.Entry), args.Error(1)
}

func (m *MockQueueRepository) GetAllPending(ctx context.Context) ([]*queue.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queue.Entry), args.Error(1)
}

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) Add(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Get(ctx context.Context, id kernel.BookingID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetActiveByRider(ctx context.Context, phone kernel.Phone) ([]*booking.Booking, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, phone kernel.Phone) (*rider.Rider, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) Exists(ctx context.Context, phone kernel.Phone) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

// MockBookingUoW satisfies every command UoW interface, so tests wire only
// the repositories a handler actually touches.
type MockBookingUoW struct{ mock.Mock }

func (m *MockBookingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBookingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBookingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBookingUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockBookingUoW) QueueRepository() ports.QueueRepository {
	args := m.Called()
	return args.Get(0).(ports.QueueRepository)
}

func (m *MockBookingUoW) BookingRepository() ports.BookingRepository {
	args := m.Called()
	return args.Get(0).(ports.BookingRepository)
}

func (m *MockBookingUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

type MockBookingUoWFactory struct{ mock.Mock }

func (m *MockBookingUoWFactory) Create() commands.BookingUoW {
	args := m.Called()
	return args.Get(0).(commands.BookingUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.PaymentUoW)
}

type MockRiderUoWFactory struct{ mock.Mock }

func (m *MockRiderUoWFactory) Create() commands.RiderUoW {
	args := m.Called()
	return args.Get(0).(commands.RiderUoW)
}
