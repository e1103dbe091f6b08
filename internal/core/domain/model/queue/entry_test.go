package queue_test

import (
	"testing"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/queue"
	"mealbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPhone(t *testing.T, s string) kernel.Phone {
	t.Helper()
	phone, err := kernel.PhoneFromString(s)
	require.NoError(t, err)
	return phone
}

func newTestEntry(t *testing.T) *queue.Entry {
	t.Helper()
	price, err := kernel.MoneyFromShillings(320)
	require.NoError(t, err)

	entry, err := queue.NewEntry(
		kernel.NewOrderID(),
		mustPhone(t, "+254712345678"),
		"Vegan Bowl",
		"Britam Tower",
		price,
		time.Now(),
	)
	require.NoError(t, err)
	return entry
}

func TestNewEntry(t *testing.T) {
	t.Run("valid entry is pending and bookable", func(t *testing.T) {
		entry := newTestEntry(t)

		require.NoError(t, entry.Validate())
		assert.Equal(t, queue.PendingBooking, entry.Status())
		assert.True(t, entry.IsBookable())
		assert.Nil(t, entry.Rider())
		assert.Nil(t, entry.BookingID())
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		price, err := kernel.MoneyFromShillings(320)
		require.NoError(t, err)
		buyer := mustPhone(t, "+254712345678")

		_, err = queue.NewEntry(kernel.OrderID{}, buyer, "Vegan Bowl", "Britam Tower", price, time.Now())
		require.Error(t, err)

		_, err = queue.NewEntry(kernel.NewOrderID(), buyer, "", "Britam Tower", price, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = queue.NewEntry(kernel.NewOrderID(), buyer, "Vegan Bowl", "", price, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var entry queue.Entry
		require.ErrorIs(t, entry.Validate(), queue.ErrEntryIsNotConstructed)
	})
}

func TestEntry_MarkBooked(t *testing.T) {
	rider := mustPhone(t, "+254700000001")
	bookingID := kernel.NewBookingID()

	t.Run("pending entry becomes booked", func(t *testing.T) {
		entry := newTestEntry(t)

		require.NoError(t, entry.MarkBooked(rider, bookingID))

		assert.Equal(t, queue.Booked, entry.Status())
		assert.False(t, entry.IsBookable())
		require.NotNil(t, entry.Rider())
		assert.True(t, entry.Rider().IsEqual(rider))
		require.NotNil(t, entry.BookingID())
		assert.True(t, entry.BookingID().IsEqual(bookingID))
	})

	t.Run("second booking rejected", func(t *testing.T) {
		entry := newTestEntry(t)
		require.NoError(t, entry.MarkBooked(rider, bookingID))

		loser := mustPhone(t, "+254700000002")
		err := entry.MarkBooked(loser, kernel.NewBookingID())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, entry.Rider().IsEqual(rider), "winner must be kept")
	})

	t.Run("zero rider or booking id rejected", func(t *testing.T) {
		entry := newTestEntry(t)

		require.Error(t, entry.MarkBooked(kernel.Phone{}, bookingID))
		require.Error(t, entry.MarkBooked(rider, kernel.BookingID{}))
		assert.True(t, entry.IsBookable(), "failed booking must not consume the entry")
	})
}

func TestRestoreEntry(t *testing.T) {
	orderID := kernel.NewOrderID()
	buyer := mustPhone(t, "+254712345678")
	rider := mustPhone(t, "+254700000001")
	bookingID := kernel.NewBookingID()
	price, err := kernel.MoneyFromShillings(320)
	require.NoError(t, err)
	createdAt := time.Now().UTC()

	t.Run("restores booked entry", func(t *testing.T) {
		entry, err := queue.RestoreEntry(orderID, buyer, "Vegan Bowl", "Britam Tower",
			price, queue.Booked, &rider, &bookingID, createdAt)

		require.NoError(t, err)
		assert.Equal(t, queue.Booked, entry.Status())
	})

	t.Run("booked entry without rider rejected", func(t *testing.T) {
		_, err := queue.RestoreEntry(orderID, buyer, "Vegan Bowl", "Britam Tower",
			price, queue.Booked, nil, &bookingID, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("pending entry with booking id rejected", func(t *testing.T) {
		_, err := queue.RestoreEntry(orderID, buyer, "Vegan Bowl", "Britam Tower",
			price, queue.PendingBooking, nil, &bookingID, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := queue.RestoreEntry(orderID, buyer, "Vegan Bowl", "Britam Tower",
			price, queue.StatusUnknown, nil, nil, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
