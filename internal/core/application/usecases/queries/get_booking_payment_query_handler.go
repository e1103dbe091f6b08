package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetBookingPaymentQueryHandler retrieves one booking's payment hold from the
// database. The rider filter doubles as the ownership check: a hold that
// exists but belongs to another rider reads the same as no hold at all.
type GetBookingPaymentQueryHandler struct {
	db *gorm.DB
}

// NewGetBookingPaymentQueryHandler creates a handler for single-booking
// payment queries. Requires a GORM database connection for query execution.
func NewGetBookingPaymentQueryHandler(db *gorm.DB) GetBookingPaymentQueryHandler {
	return GetBookingPaymentQueryHandler{db: db}
}

// Handle executes the query to retrieve the booking's payment hold.
// Returns an ObjectNotFoundError when no hold matches the booking and rider.
func (h GetBookingPaymentQueryHandler) Handle(
	ctx context.Context,
	query GetBookingPaymentQuery,
) (PaymentHoldResponse, error) {
	if err := query.Validate(); err != nil {
		return PaymentHoldResponse{}, err
	}

	var (
		orderID          string
		amountMinorUnits int64
		status           int
		createdAt        time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			amount_minor_units,
			status,
			created_at
		FROM payment_holds
		WHERE booking_id = ? AND rider = ?
	`, query.BookingID().String(), query.Rider().String()).Row()

	err := row.Scan(&orderID, &amountMinorUnits, &status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return PaymentHoldResponse{}, errs.NewObjectNotFoundError(
			"paymentHold", query.BookingID().String())
	}
	if err != nil {
		return PaymentHoldResponse{}, err
	}

	oID, err := kernel.OrderIDFromString(orderID)
	if err != nil {
		return PaymentHoldResponse{}, err
	}

	amount, err := kernel.NewMoney(amountMinorUnits)
	if err != nil {
		return PaymentHoldResponse{}, err
	}

	return PaymentHoldResponse{
		BookingID: query.BookingID(),
		OrderID:   oID,
		Amount:    amount,
		Status:    booking.HoldStatus(status),
		CreatedAt: createdAt,
	}, nil
}
