// Package bookingrepo provides data transfer objects and mapping functions
// for booking persistence. A booking and its payment hold live in two tables
// but are always written and read together: the repository never exposes a
// hold without its booking.
package bookingrepo

import (
	"time"

	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
)

// BookingDTO represents the database structure for persisting booking
// aggregates.
type BookingDTO struct {
	ID              string `gorm:"type:text;primaryKey"`
	OrderID         string `gorm:"type:text;uniqueIndex"`
	Rider           string `gorm:"type:text;index"`
	Buyer           string `gorm:"type:text"`
	MealName        string
	Location        string
	PriceMinorUnits int64
	Status          int `gorm:"index"`
	BookedAt        time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
}

// TableName specifies the database table name for bookings.
func (BookingDTO) TableName() string {
	return "bookings"
}

// PaymentHoldDTO represents the database structure for persisting payment
// holds. The booking id doubles as the primary key: exactly one hold per
// booking.
type PaymentHoldDTO struct {
	BookingID        string `gorm:"type:text;primaryKey"`
	OrderID          string `gorm:"type:text"`
	Rider            string `gorm:"type:text;index"`
	AmountMinorUnits int64
	Status           int `gorm:"index"`
	CreatedAt        time.Time
	ReleasedAt       *time.Time
}

// TableName specifies the database table name for payment holds.
func (PaymentHoldDTO) TableName() string {
	return "payment_holds"
}

// fromDomain converts a booking aggregate to its two database rows.
func fromDomain(aggregate *booking.Booking) (BookingDTO, PaymentHoldDTO) {
	hold := aggregate.PaymentHold()

	bookingDTO := BookingDTO{
		ID:              aggregate.ID().String(),
		OrderID:         aggregate.OrderID().String(),
		Rider:           aggregate.Rider().String(),
		Buyer:           aggregate.Buyer().String(),
		MealName:        aggregate.MealName(),
		Location:        aggregate.Location(),
		PriceMinorUnits: aggregate.Price().MinorUnits(),
		Status:          int(aggregate.Status()),
		BookedAt:        aggregate.BookedAt(),
		PickedUpAt:      aggregate.PickedUpAt(),
		DeliveredAt:     aggregate.DeliveredAt(),
	}

	holdDTO := PaymentHoldDTO{
		BookingID:        hold.BookingID().String(),
		OrderID:          hold.OrderID().String(),
		Rider:            hold.Rider().String(),
		AmountMinorUnits: hold.Amount().MinorUnits(),
		Status:           int(hold.Status()),
		CreatedAt:        hold.CreatedAt(),
		ReleasedAt:       hold.ReleasedAt(),
	}

	return bookingDTO, holdDTO
}

// toDomain converts the two database rows back to a booking aggregate.
// RestoreBooking revalidates the hold/status coupling, so a row pair that
// drifted apart fails loudly instead of producing an inconsistent aggregate.
func toDomain(bookingDTO BookingDTO, holdDTO PaymentHoldDTO) (*booking.Booking, error) {
	id, err := kernel.BookingIDFromString(bookingDTO.ID)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.OrderIDFromString(bookingDTO.OrderID)
	if err != nil {
		return nil, err
	}

	riderPhone, err := kernel.PhoneFromString(bookingDTO.Rider)
	if err != nil {
		return nil, err
	}

	buyer, err := kernel.PhoneFromString(bookingDTO.Buyer)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(bookingDTO.PriceMinorUnits)
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(holdDTO.AmountMinorUnits)
	if err != nil {
		return nil, err
	}

	hold, err := booking.RestorePaymentHold(
		id,
		orderID,
		riderPhone,
		amount,
		booking.HoldStatus(holdDTO.Status),
		holdDTO.CreatedAt,
		holdDTO.ReleasedAt,
	)
	if err != nil {
		return nil, err
	}

	return booking.RestoreBooking(
		id,
		orderID,
		riderPhone,
		buyer,
		bookingDTO.MealName,
		bookingDTO.Location,
		price,
		booking.Status(bookingDTO.Status),
		hold,
		bookingDTO.BookedAt,
		bookingDTO.PickedUpAt,
		bookingDTO.DeliveredAt,
	)
}
