package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/application/usecases/queries"
	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/session"

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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Save(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, phone kernel.Phone) (*session.Session, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockPaymentConfirmer struct{ mock.Mock }

func (m *MockPaymentConfirmer) Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockOrderBooker struct{ mock.Mock }

func (m *MockOrderBooker) Handle(ctx context.Context, cmd commands.AttemptBookingCommand) (*booking.Booking, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

type MockPickupConfirmer struct{ mock.Mock }

func (m *MockPickupConfirmer) Handle(ctx context.Context, cmd commands.ConfirmPickupCommand) (*booking.Booking, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

type MockDeliveryConfirmer struct{ mock.Mock }

func (m *MockDeliveryConfirmer) Handle(ctx context.Context, cmd commands.ConfirmDeliveryCommand) (*booking.Booking, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

type MockPendingOrdersReader struct{ mock.Mock }

func (m *MockPendingOrdersReader) Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetPendingOrdersQueryResponse), args.Error(1)
}

type MockRiderBookingsReader struct{ mock.Mock }

func (m *MockRiderBookingsReader) Handle(ctx context.Context, query queries.GetRiderBookingsQuery) ([]queries.GetRiderBookingsQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetRiderBookingsQueryResponse), args.Error(1)
}

type MockPaymentStatusReader struct{ mock.Mock }

func (m *MockPaymentStatusReader) Handle(ctx context.Context, query queries.GetPaymentStatusQuery) (queries.GetPaymentStatusQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetPaymentStatusQueryResponse), args.Error(1)
}

type MockBookingPaymentReader struct{ mock.Mock }

func (m *MockBookingPaymentReader) Handle(ctx context.Context, query queries.GetBookingPaymentQuery) (queries.PaymentHoldResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.PaymentHoldResponse), args.Error(1)
}
